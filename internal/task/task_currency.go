package task

import (
	"context"
	"sync"

	"github.com/haierkeys/portfolio-dash/internal/app"
	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/pkg/eventbus"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
)

// CurrencyReloadTask re-reads the stored currency and broadcasts
// currencyChanged when another process changed it.
// CurrencyReloadTask 检测其他进程写入的货币偏好并广播
type CurrencyReloadTask struct {
	app *app.App
	sub *eventbus.Subscription

	mu   sync.Mutex
	last domain.Currency
	seen bool
}

func init() {
	RegisterWithApp(func(a *app.App) (Task, error) {
		return NewCurrencyReloadTask(a), nil
	})
}

// NewCurrencyReloadTask 创建任务，并跟随本进程内的货币变更
func NewCurrencyReloadTask(a *app.App) *CurrencyReloadTask {
	t := &CurrencyReloadTask{app: a}
	t.sub = a.Prefs.SubscribeCurrency(func(c domain.Currency) {
		t.mu.Lock()
		t.last, t.seen = c, true
		t.mu.Unlock()
	})
	return t
}

func (t *CurrencyReloadTask) Name() string { return "currency_reload" }

func (t *CurrencyReloadTask) Spec() string { return "@every 10s" }

func (t *CurrencyReloadTask) IsStartupRun() bool { return true }

func (t *CurrencyReloadTask) Run(ctx context.Context) error {
	c := t.app.Prefs.Currency(ctx)

	t.mu.Lock()
	changed := t.seen && c != t.last
	t.last, t.seen = c, true
	t.mu.Unlock()

	if !changed {
		return nil
	}
	n := eventbus.Publish(t.app.Bus, service.CurrencyChanged, c)
	t.app.Logger().Info("currency changed outside this process",
		zap.String(logger.FieldTask, t.Name()),
		zap.String(logger.FieldCurrency, string(c)),
		zap.Int("listeners", n))
	return nil
}

// Close 取消订阅
func (t *CurrencyReloadTask) Close() {
	t.sub.Unsubscribe()
}
