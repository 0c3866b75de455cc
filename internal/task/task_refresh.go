package task

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/app"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
)

// NotificationRefreshTask 定时重新拉取通知列表
type NotificationRefreshTask struct {
	app *app.App
}

// ExchangeRefreshTask 定时重新拉取交易所连接列表
type ExchangeRefreshTask struct {
	app *app.App
}

func init() {
	RegisterWithApp(func(a *app.App) (Task, error) {
		return &NotificationRefreshTask{app: a}, nil
	})
	RegisterWithApp(func(a *app.App) (Task, error) {
		return &ExchangeRefreshTask{app: a}, nil
	})
}

func (t *NotificationRefreshTask) Name() string { return "notification_refresh" }

func (t *NotificationRefreshTask) Spec() string { return "" }

// IsStartupRun 首次加载由视图挂载完成
func (t *NotificationRefreshTask) IsStartupRun() bool { return false }

// Run 拉取失败时列表已被清空，这里把错误交给调度器记录
func (t *NotificationRefreshTask) Run(ctx context.Context) error {
	list := t.app.Store.Refresh(ctx)
	if err := t.app.Store.LastFetchErr(); err != nil {
		return err
	}
	t.app.Logger().Debug("notifications refreshed",
		zap.String(logger.FieldTask, t.Name()),
		zap.Int(logger.FieldCount, len(list)),
		zap.Int("unread", t.app.Store.UnreadCount()))
	return nil
}

func (t *ExchangeRefreshTask) Name() string { return "exchange_refresh" }

func (t *ExchangeRefreshTask) Spec() string { return "" }

func (t *ExchangeRefreshTask) IsStartupRun() bool { return false }

func (t *ExchangeRefreshTask) Run(ctx context.Context) error {
	list := t.app.Registry.Refresh(ctx)
	if err := t.app.Registry.LastFetchErr(); err != nil {
		return err
	}
	t.app.Logger().Debug("exchanges refreshed",
		zap.String(logger.FieldTask, t.Name()),
		zap.Int(logger.FieldCount, len(list)))
	return nil
}
