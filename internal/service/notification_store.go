package service

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/inflight"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// NotificationStore 通知存储，未读数每次从列表重新计算
type NotificationStore struct {
	api     domain.NotificationAPI
	alerter Alerter
	logger  *zap.Logger
	items   collection[*domain.Notification]
	guard   *inflight.Guard
	sf      singleflight.Group
}

func NewNotificationStore(api domain.NotificationAPI, alerter Alerter, lg *zap.Logger) *NotificationStore {
	if alerter == nil {
		alerter = nopAlerter{}
	}
	if lg == nil {
		lg = zap.NewNop()
	}
	return &NotificationStore{
		api:     api,
		alerter: alerter,
		logger:  lg,
		guard:   inflight.NewGuard(),
	}
}

// FetchAll loads every notification, degrading to empty on failure
func (s *NotificationStore) FetchAll(ctx context.Context) []*domain.Notification {
	seq := s.items.begin()
	list, err := s.api.ListNotifications(ctx)
	if err != nil {
		s.logger.Warn("failed to load notifications",
			zap.String(logger.FieldMethod, "NotificationStore.FetchAll"),
			zap.Error(err))
		list = nil
	}
	if !s.items.apply(seq, uniqueNotifications(list), err) {
		s.logger.Debug("discarded notification list", zap.Uint64("seq", seq))
	}
	return s.Notifications()
}

// Refresh shares one request between concurrent callers
func (s *NotificationStore) Refresh(ctx context.Context) []*domain.Notification {
	v, _, _ := s.sf.Do("notifications", func() (any, error) {
		return s.FetchAll(ctx), nil
	})
	return v.([]*domain.Notification)
}

func (s *NotificationStore) Notifications() []*domain.Notification {
	var out []*domain.Notification
	s.items.view(func(items []*domain.Notification) {
		out = make([]*domain.Notification, 0, len(items))
		for _, n := range items {
			out = append(out, n.Clone())
		}
	})
	return out
}

// UnreadCount 未读数量
func (s *NotificationStore) UnreadCount() int {
	n := 0
	s.items.view(func(items []*domain.Notification) {
		n = domain.CountUnread(items)
	})
	return n
}

func (s *NotificationStore) Loaded() bool { return s.items.isLoaded() }

func (s *NotificationStore) LastFetchErr() error { return s.items.err() }

func (s *NotificationStore) Close() { s.items.close() }

// Open starts a new mount. Fetches issued before it are discarded.
func (s *NotificationStore) Open() { s.items.open() }

// MarkRead marks one notification read on the server and resyncs. Marking an
// already-read notification is not an error.
func (s *NotificationStore) MarkRead(ctx context.Context, id domain.ID) error {
	release, ok := s.guard.Acquire("read:" + id.String())
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.api.MarkNotificationRead(ctx, id); err != nil {
		s.logger.Error("mark as read failed",
			zap.String(logger.FieldNotificationID, id.String()),
			zap.Error(err))
		return s.fail(ctx, code.ErrorNotificationMarkReadFailed, err)
	}
	s.FetchAll(ctx)
	return nil
}

// MarkAllRead 全部标记已读后重新拉取
func (s *NotificationStore) MarkAllRead(ctx context.Context) error {
	release, ok := s.guard.Acquire("read-all")
	if !ok {
		return ErrBusy
	}
	defer release()

	if err := s.api.MarkAllNotificationsRead(ctx); err != nil {
		s.logger.Error("mark all as read failed", zap.Error(err))
		return s.fail(ctx, code.ErrorNotificationMarkAllReadFailed, err)
	}
	s.FetchAll(ctx)
	return nil
}

func (s *NotificationStore) fail(ctx context.Context, c *code.Code, cause error) error {
	s.alerter.Alert(ctx, c.Msg())
	return c.WithCause(cause)
}

func uniqueNotifications(list []*domain.Notification) []*domain.Notification {
	if len(list) == 0 {
		return nil
	}
	index := make(map[domain.ID]int, len(list))
	out := make([]*domain.Notification, 0, len(list))
	for _, n := range list {
		if n == nil {
			continue
		}
		if i, ok := index[n.ID]; ok {
			out[i] = n
			continue
		}
		index[n.ID] = len(out)
		out = append(out, n)
	}
	return out
}
