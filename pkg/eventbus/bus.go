// Package eventbus is a process-wide publish/subscribe channel with typed
// topics and an explicit subscribe/unsubscribe lifecycle.
package eventbus

import (
	"sync"

	"go.uber.org/zap"
)

// Topic names an event stream carrying payloads of type T
type Topic[T any] struct {
	name string
}

// NewTopic 创建一个类型化的主题
func NewTopic[T any](name string) Topic[T] {
	return Topic[T]{name: name}
}

func (t Topic[T]) Name() string { return t.name }

type handler struct {
	id uint64
	fn func(any)
}

// Bus 事件总线，投递同步进行，按订阅顺序调用
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]handler
	logger *zap.Logger
}

// New 创建事件总线
func New(logger *zap.Logger) *Bus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bus{
		subs:   make(map[string][]handler),
		logger: logger,
	}
}

// Subscription is returned by Subscribe; call Unsubscribe to release the listener
type Subscription struct {
	bus   *Bus
	topic string
	id    uint64
	once  sync.Once
}

// Unsubscribe removes the listener. Safe to call more than once and from
// inside the listener itself.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.topic, s.id)
	})
}

// Subscribe registers fn for every payload published on t
// Subscribe 订阅主题
func Subscribe[T any](b *Bus, t Topic[T], fn func(T)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[t.name] = append(b.subs[t.name], handler{
		id: id,
		fn: func(v any) { fn(v.(T)) },
	})
	return &Subscription{bus: b, topic: t.name, id: id}
}

// Publish delivers v synchronously to every listener currently subscribed to t
// and returns how many were called. Delivery is fire-and-forget: a panicking
// listener is logged and skipped, the remaining listeners still run.
// Publish 同步投递事件，不等待确认
func Publish[T any](b *Bus, t Topic[T], v T) int {
	b.mu.RLock()
	hs := make([]handler, len(b.subs[t.name]))
	copy(hs, b.subs[t.name])
	b.mu.RUnlock()

	for _, h := range hs {
		b.deliver(t.name, h, v)
	}
	return len(hs)
}

func (b *Bus) deliver(topic string, h handler, v any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("eventbus listener panic",
				zap.String("topic", topic),
				zap.Uint64("subscription", h.id),
				zap.Any("panic", r))
		}
	}()
	h.fn(v)
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	hs := b.subs[topic]
	for i, h := range hs {
		if h.id == id {
			b.subs[topic] = append(hs[:i:i], hs[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Len returns the number of listeners on a topic
func (b *Bus) Len(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
