// Package devserver is an in-memory implementation of the portfolio REST API
// used for local development and integration tests.
package devserver

import (
	"context"
	"sync"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Backend keeps exchange links and notifications per user (token subject).
// API secrets are checked for presence and then discarded.
type Backend struct {
	mu     sync.Mutex
	users  map[string]*userData
	seed   bool
	now    func() time.Time
	newID  func() domain.ID
	logger *zap.Logger
}

type userData struct {
	links         []*domain.ExchangeLink
	notifications []*domain.Notification
}

// Option 后端选项
type Option func(*Backend)

// WithClock 替换时间来源
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// WithIDs 替换 ID 生成器
func WithIDs(next func() domain.ID) Option {
	return func(b *Backend) { b.newID = next }
}

// NewBackend 创建内存后端；seed 为 true 时每个新用户获得两条示例通知
func NewBackend(seed bool, lg *zap.Logger, opts ...Option) *Backend {
	if lg == nil {
		lg = zap.NewNop()
	}
	b := &Backend{
		users:  make(map[string]*userData),
		seed:   seed,
		now:    time.Now,
		newID:  func() domain.ID { return domain.ID(uuid.NewString()) },
		logger: lg,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// user 必须在持有 b.mu 时调用
func (b *Backend) user(uid string) *userData {
	u, ok := b.users[uid]
	if ok {
		return u
	}
	u = &userData{}
	if b.seed {
		u.notifications = []*domain.Notification{
			{ID: b.newID(), Payload: map[string]any{"title": "Welcome to Portfolio Dash"}},
			{ID: b.newID(), Read: true, Payload: map[string]any{"title": "Connect an exchange to import your holdings"}},
		}
	}
	b.users[uid] = u
	return u
}

func (b *Backend) ListExchanges(_ context.Context, uid string) []*domain.ExchangeLink {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(uid)
	out := make([]*domain.ExchangeLink, len(u.links))
	for i, l := range u.links {
		out[i] = l.Clone()
	}
	return out
}

// CreateExchange links a new account and posts a notification about it
func (b *Backend) CreateExchange(_ context.Context, uid string, d domain.CredentialDraft) (*domain.ExchangeLink, error) {
	if !d.ExchangeKind.IsSupported() {
		return nil, code.ErrorExchangeUnsupported.WithDetails(string(d.ExchangeKind))
	}
	if !d.HasAPIKey() || !d.HasAPISecret() {
		return nil, code.ErrorCredentialInvalid.WithDetails("apiKey and apiSecret are required")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(uid)
	l := &domain.ExchangeLink{
		ID:           b.newID(),
		ExchangeKind: d.ExchangeKind,
		Label:        d.Label,
		Status:       domain.LinkConnected,
	}
	u.links = append(u.links, l)
	u.notifications = append(u.notifications, &domain.Notification{
		ID:      b.newID(),
		Payload: map[string]any{"title": d.ExchangeKind.DisplayName() + " connected", "exchangeId": string(l.ID)},
	})
	b.logger.Info("exchange linked",
		zap.String("uid", uid),
		zap.String(logger.FieldExchangeID, l.ID.String()),
		zap.Object(logger.FieldDraft, d))
	return l.Clone(), nil
}

// SyncExchange 将 lastSyncedAt 更新为当前时间
func (b *Backend) SyncExchange(_ context.Context, uid string, id domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, l := range b.user(uid).links {
		if l.ID == id {
			t := b.now()
			l.LastSyncedAt = &t
			l.Status = domain.LinkConnected
			return nil
		}
	}
	return code.ErrorExchangeNotFound.WithDetails(id.String())
}

func (b *Backend) DeleteExchange(_ context.Context, uid string, id domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(uid)
	for i, l := range u.links {
		if l.ID == id {
			u.links = append(u.links[:i], u.links[i+1:]...)
			return nil
		}
	}
	return code.ErrorExchangeNotFound.WithDetails(id.String())
}

func (b *Backend) ListNotifications(_ context.Context, uid string) []*domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(uid)
	out := make([]*domain.Notification, len(u.notifications))
	for i, n := range u.notifications {
		out[i] = n.Clone()
	}
	return out
}

// MarkRead 标记一条通知为已读，重复标记不报错
func (b *Backend) MarkRead(_ context.Context, uid string, id domain.ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, n := range b.user(uid).notifications {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return code.ErrorNotificationNotFound.WithDetails(id.String())
}

// MarkAllRead 返回本次被标记的数量
func (b *Backend) MarkAllRead(_ context.Context, uid string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, item := range b.user(uid).notifications {
		if !item.Read {
			item.Read = true
			n++
		}
	}
	return n
}

// Notify appends an unread notification for uid
func (b *Backend) Notify(uid string, payload map[string]any) *domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.user(uid)
	n := &domain.Notification{ID: b.newID(), Payload: payload}
	u.notifications = append(u.notifications, n)
	return n.Clone()
}
