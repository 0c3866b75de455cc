package task

import (
	"context"
	"sync"

	"github.com/haierkeys/portfolio-dash/pkg/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task 定义任务接口
type Task interface {
	Name() string                  // 任务名称
	Run(ctx context.Context) error // 执行任务
	Spec() string                  // cron 表达式，为空时使用调度器默认值
	IsStartupRun() bool            // 是否立即执行一次
}

// Scheduler 任务调度器
type Scheduler struct {
	logger *zap.Logger
	spec   string
	cron   *cron.Cron
	tasks  []Task

	mu       sync.Mutex
	started  bool
	afterRun func(t Task, err error)
	wg       sync.WaitGroup
}

// NewScheduler 创建任务调度器
// spec 为没有自带表达式的任务使用的默认 cron 表达式
func NewScheduler(lg *zap.Logger, spec string) *Scheduler {
	if lg == nil {
		lg = zap.NewNop()
	}
	cl := cronLogger{lg.Sugar()}
	return &Scheduler{
		logger: lg,
		spec:   spec,
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}
}

// AddTask 添加任务，Start 之后添加的任务不会被调度
func (s *Scheduler) AddTask(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

// SetAfterRun 设置每次任务执行结束后的回调，需在 Start 之前调用
func (s *Scheduler) SetAfterRun(fn func(t Task, err error)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afterRun = fn
}

// Start 注册全部任务并启动调度；ctx 传递给每次执行
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}

	if len(s.tasks) == 0 {
		s.logger.Info("no tasks to schedule")
	}

	for _, t := range s.tasks {
		spec := t.Spec()
		if spec == "" {
			spec = s.spec
		}
		t := t
		if _, err := s.cron.AddFunc(spec, func() { s.run(ctx, t, false) }); err != nil {
			return errors.Wrapf(err, "schedule task %s with %q", t.Name(), spec)
		}
	}

	for _, t := range s.tasks {
		if !t.IsStartupRun() {
			continue
		}
		s.wg.Add(1)
		go func(t Task) {
			defer s.wg.Done()
			s.run(ctx, t, true)
		}(t)
	}

	s.cron.Start()
	s.started = true
	s.logger.Info("tasks started", zap.Int(logger.FieldCount, len(s.tasks)))
	return nil
}

// Stop 停止调度并等待正在执行的任务结束
// 实现了 Close 的任务在此释放，之后调度器不再持有任务
func (s *Scheduler) Stop() {
	s.mu.Lock()
	started := s.started
	s.started = false
	tasks := s.tasks
	s.tasks = nil
	s.mu.Unlock()

	if started {
		<-s.cron.Stop().Done()
		s.wg.Wait()
		s.logger.Info("tasks stopped")
	}

	for _, t := range tasks {
		if c, ok := t.(closer); ok {
			c.Close()
		}
	}
}

// closer 需要释放资源（如事件订阅）的任务
type closer interface {
	Close()
}

// run 执行一次任务，启动执行不经过 cron 的 Recover，需要自己兜底
func (s *Scheduler) run(ctx context.Context, t Task, startup bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task panic",
				zap.String(logger.FieldTask, t.Name()),
				zap.Bool("startupRun", startup),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}()
	if ctx.Err() != nil {
		return
	}
	err := t.Run(ctx)
	if err != nil {
		s.logger.Warn("task running error",
			zap.String(logger.FieldTask, t.Name()),
			zap.Bool("startupRun", startup),
			zap.Error(err))
	} else {
		s.logger.Debug("task done", zap.String(logger.FieldTask, t.Name()), zap.Bool("startupRun", startup))
	}
	if s.afterRun != nil {
		s.afterRun(t, err)
	}
}

// cronLogger 将 cron.Logger 接到 zap
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw("cron: "+msg, append(keysAndValues, logger.FieldError, err)...)
}
