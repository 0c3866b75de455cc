// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/haierkeys/portfolio-dash/internal/dao"
	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/remote"
	"github.com/haierkeys/portfolio-dash/internal/service"
	pkgapp "github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/eventbus"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao
	Bus    *eventbus.Bus

	// Repository 层
	PrefRepo domain.PreferenceRepository

	// 远程接口
	Remote *remote.Client

	// Service 层
	Prefs    service.PreferenceService
	Auth     service.AuthService
	Registry *service.ExchangeRegistry
	Store    *service.NotificationStore

	alerter service.Alerter

	closeOnce sync.Once
}

// Option 应用容器选项
type Option func(*App)

// WithAlerter 设置变更失败时的提示方式，默认只写日志
func WithAlerter(a service.Alerter) Option {
	return func(app *App) { app.alerter = a }
}

// NewApp 创建应用容器实例
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 偏好设置数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config: cfg,
		logger: logger,
		DB:     db,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.alerter == nil {
		a.alerter = service.AlertFunc(func(_ context.Context, msg string) {
			logger.Warn("alert", zap.String("message", msg))
		})
	}

	a.Dao = dao.New(db, logger)
	if err := a.Dao.Migrate(); err != nil {
		return nil, err
	}
	a.Bus = eventbus.New(logger)

	a.PrefRepo = dao.NewPreferenceRepository(a.Dao)
	a.Prefs = service.NewPreferenceService(a.PrefRepo, a.Bus, logger)
	a.Auth = service.NewAuthService(a.PrefRepo, a.Prefs, logger)

	// 每次请求时从偏好存储读取 token，登录/登出立即生效
	client, err := remote.NewClient(cfg.Remote, remote.TokenFunc(a.Auth.Token), remote.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	a.Remote = client

	a.Registry = service.NewExchangeRegistry(a.Remote, a.alerter, logger)
	a.Store = service.NewNotificationStore(a.Remote, a.alerter, logger)

	logger.Debug("App container initialized",
		zap.String("remote", cfg.Remote.BaseURL),
		zap.String("database", cfg.Database.Path))

	return a, nil
}

// Close 释放应用容器持有的资源，可重复调用
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		a.Registry.Close()
		a.Store.Close()
		if a.Dao != nil {
			if e := a.Dao.Close(); e != nil {
				err = fmt.Errorf("failed to close database: %w", e)
				return
			}
			a.logger.Debug("Database connection closed")
		}
	})
	return err
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Alerter 获取提示器
func (a *App) Alerter() service.Alerter {
	return a.alerter
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// OpenDatabase 按配置打开偏好设置数据库
func OpenDatabase(cfg *AppConfig, logger *zap.Logger) (*gorm.DB, error) {
	return dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Path:            cfg.Database.Path,
		TablePrefix:     cfg.Database.TablePrefix,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.GetConnMaxLifetime(),
		Debug:           cfg.Database.Debug,
	}, logger)
}
