package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/pkg/errors"
)

var errNetwork = errors.New("network error")

// fakeExchangeAPI keeps server-side state in memory
type fakeExchangeAPI struct {
	mu      sync.Mutex
	links   []*domain.ExchangeLink
	nextID  int
	calls   []string
	failOn  map[string]error
	gate    chan struct{} // when set, CreateExchange waits on it
	now     time.Time
	listErr error
}

func newFakeExchangeAPI(links ...*domain.ExchangeLink) *fakeExchangeAPI {
	return &fakeExchangeAPI{
		links:  links,
		nextID: 100,
		failOn: map[string]error{},
		now:    time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
	}
}

func (f *fakeExchangeAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeExchangeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeExchangeAPI) ListExchanges(ctx context.Context) ([]*domain.ExchangeLink, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*domain.ExchangeLink, 0, len(f.links))
	for _, l := range f.links {
		out = append(out, l.Clone())
	}
	return out, nil
}

func (f *fakeExchangeAPI) CreateExchange(ctx context.Context, d domain.CredentialDraft) (*domain.ExchangeLink, error) {
	if f.gate != nil {
		<-f.gate
	}
	if err := f.record("create"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l := &domain.ExchangeLink{
		ID:           domain.ID(strconv.Itoa(f.nextID)),
		ExchangeKind: d.ExchangeKind,
		Label:        d.Label,
		Status:       domain.LinkConnected,
	}
	f.links = append(f.links, l)
	return l.Clone(), nil
}

func (f *fakeExchangeAPI) SyncExchange(ctx context.Context, id domain.ID) error {
	if err := f.record("sync:" + id.String()); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.ID == id {
			f.now = f.now.Add(time.Minute)
			t := f.now
			l.LastSyncedAt = &t
		}
	}
	return nil
}

func (f *fakeExchangeAPI) DeleteExchange(ctx context.Context, id domain.ID) error {
	if err := f.record("delete:" + id.String()); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.links {
		if l.ID == id {
			f.links = append(f.links[:i], f.links[i+1:]...)
			break
		}
	}
	return nil
}

// fakeNotificationAPI 模拟通知接口
type fakeNotificationAPI struct {
	mu     sync.Mutex
	items  []*domain.Notification
	calls  []string
	failOn map[string]error
}

func newFakeNotificationAPI(items ...*domain.Notification) *fakeNotificationAPI {
	return &fakeNotificationAPI{items: items, failOn: map[string]error{}}
}

func (f *fakeNotificationAPI) record(call string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	return f.failOn[call]
}

func (f *fakeNotificationAPI) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	if err := f.record("list"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Notification, 0, len(f.items))
	for _, n := range f.items {
		c := *n
		out = append(out, &c)
	}
	return out, nil
}

func (f *fakeNotificationAPI) MarkNotificationRead(ctx context.Context, id domain.ID) error {
	if err := f.record("read:" + id.String()); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.items {
		if n.ID == id {
			n.Read = true
		}
	}
	return nil
}

func (f *fakeNotificationAPI) MarkAllNotificationsRead(ctx context.Context) error {
	if err := f.record("read-all"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.items {
		n.Read = true
	}
	return nil
}

// memPrefs 内存偏好仓储
type memPrefs struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func newMemPrefs() *memPrefs {
	return &memPrefs{values: map[string]string{}}
}

func (m *memPrefs) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memPrefs) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memPrefs) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// recordingAlerter 记录弹窗消息
type recordingAlerter struct {
	mu       sync.Mutex
	messages []string
}

func (a *recordingAlerter) Alert(ctx context.Context, message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.messages = append(a.messages, message)
}

func (a *recordingAlerter) Messages() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.messages...)
}
