package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/task"
	"github.com/haierkeys/portfolio-dash/internal/view"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// dashboardPrinter 仅在渲染结果变化时输出
type dashboardPrinter struct {
	mu   sync.Mutex
	s    *session
	dash *view.Dashboard
	last string
}

func (p *dashboardPrinter) print(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := p.dash.Render(ctx)
	if out == p.last {
		return
	}
	p.last = out
	if err := p.s.render(out); err != nil {
		p.s.logger.Warn("render dashboard", zap.Error(err))
	}
}

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Show the dashboard and keep it refreshed until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			for {
				reload, err := watchOnce(ctx, cmd)
				if err != nil {
					return err
				}
				if !reload {
					return nil
				}
				bootstrapLogger.Info("config changed, reloading dashboard")
			}
		},
	}
	rootCmd.AddCommand(watchCmd)
}

// watchOnce 运行一轮 dashboard，配置文件变更时返回 reload=true
func watchOnce(ctx context.Context, cmd *cobra.Command) (reload bool, err error) {
	s, err := openSession(cmd)
	if err != nil {
		return false, err
	}
	defer s.Close()

	dash := view.NewDashboard(s.app.Store, s.app.Registry, s.app.Prefs, s.prompt)
	defer dash.Unmount()
	if err := dash.Mount(ctx); err != nil {
		return false, err
	}

	printer := &dashboardPrinter{s: s, dash: dash}
	printer.print(ctx)

	sub := s.app.Prefs.SubscribeCurrency(func(domain.Currency) { printer.print(ctx) })
	defer sub.Unsubscribe()

	manager := task.NewManager(s.logger, s.cfg.Dashboard.RefreshSpec)
	if err := manager.RegisterTasks(s.app); err != nil {
		return false, err
	}
	manager.SetAfterRun(func(task.Task, error) { printer.print(ctx) })
	if err := manager.Start(ctx); err != nil {
		return false, err
	}
	defer manager.Stop()

	w := watcher.New()
	// 每个轮询周期最多一个事件，只关注写入
	w.SetMaxEvents(1)
	w.FilterOps(watcher.Write)
	if err := w.Add(s.cfgPath); err != nil {
		s.logger.Error("config watcher file error", zap.Error(err))
	}
	go func() {
		if err := w.Start(time.Second); err != nil {
			s.logger.Error("config watcher start error", zap.Error(err))
		}
	}()
	defer w.Close()

	for {
		select {
		case <-ctx.Done():
			return false, nil
		case event := <-w.Event:
			s.logger.Info("config watcher change", zap.String("event", event.Op.String()), zap.String("file", event.Path))
			return true, nil
		case err := <-w.Error:
			s.logger.Error("config watcher error", zap.Error(err))
		case <-w.Closed:
			return false, nil
		}
	}
}
