package task

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/app"
	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"go.uber.org/zap"
)

// Manager 任务管理器，负责创建和管理所有任务
type Manager struct {
	scheduler *Scheduler
	logger    *zap.Logger
}

// NewManager 创建任务管理器
func NewManager(lg *zap.Logger, spec string) *Manager {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Manager{
		scheduler: NewScheduler(lg, spec),
		logger:    lg,
	}
}

// RegisterTasks 通过已注册的工厂创建任务
func (m *Manager) RegisterTasks(a *app.App) error {
	for _, factory := range GetFactories() {
		t, err := factory(a)
		if err != nil {
			m.logger.Warn("failed to create task", zap.Error(err))
			return err
		}
		if t == nil {
			continue
		}
		m.logger.Debug("task registered", zap.String(logger.FieldTask, t.Name()))
		m.scheduler.AddTask(t)
	}
	return nil
}

// AddTask 添加额外任务（例如 watch 命令的输出任务）
func (m *Manager) AddTask(t Task) {
	m.scheduler.AddTask(t)
}

// SetAfterRun 每次任务执行结束后回调
func (m *Manager) SetAfterRun(fn func(t Task, err error)) {
	m.scheduler.SetAfterRun(fn)
}

// Start 启动所有已注册的任务
func (m *Manager) Start(ctx context.Context) error {
	return m.scheduler.Start(ctx)
}

// Stop 停止调度
func (m *Manager) Stop() {
	m.scheduler.Stop()
}
