package routers

import (
	"time"

	"github.com/haierkeys/portfolio-dash/internal/devserver"
	"github.com/haierkeys/portfolio-dash/internal/middleware"
	"github.com/haierkeys/portfolio-dash/internal/routers/api_router"
	pkgapp "github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/limiter"
	"github.com/haierkeys/portfolio-dash/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Config 路由配置
type Config struct {
	RunMode        string
	RateLimit      int // 每秒请求数，0 表示不限制
	RateBurst      int
	ContextTimeout time.Duration
	Version        pkgapp.VersionInfo
}

// Deps 路由依赖
type Deps struct {
	Backend  *devserver.Backend
	Tokens   pkgapp.TokenManager
	Logger   *zap.Logger
	Registry *prometheus.Registry // 为空时新建，每个 Registry 只能用于一个路由
}

// NewRouter 创建开发服务器路由
func NewRouter(cfg Config, deps Deps) *gin.Engine {
	lg := deps.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	v := validator.New()
	binding.Validator = v

	if cfg.RunMode != "" {
		gin.SetMode(cfg.RunMode)
	}

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.NewMetrics(reg).Handler())
	r.Use(middleware.TraceMiddlewareWithConfig(true, middleware.DefaultTraceIDHeader))
	if cfg.RateLimit > 0 {
		burst := int64(cfg.RateBurst)
		if burst <= 0 {
			burst = int64(cfg.RateLimit)
		}
		r.Use(middleware.RateLimiter(limiter.NewGlobalLimiter().AddBuckets(limiter.BucketRule{
			Key:          limiter.GlobalKey,
			FillInterval: time.Second,
			Capacity:     burst,
			Quantum:      int64(cfg.RateLimit),
		})))
	}

	registerDebugRoutes(r, cfg.RunMode, reg)

	// the exchanges collection gets its own bucket on top of the global one
	methodLimiters := limiter.NewMethodLimiter().AddBuckets(
		limiter.BucketRule{
			Key:          "/api/exchanges",
			FillInterval: time.Second,
			Capacity:     10,
			Quantum:      10,
		},
	)

	h := api_router.NewHandler(deps.Backend, v, lg)
	exchangeHandler := api_router.NewExchangeHandler(h)
	notificationHandler := api_router.NewNotificationHandler(h)
	versionHandler := api_router.NewVersionHandler(cfg.Version)

	r.GET("/api/version", versionHandler.ServerVersion)

	authed := r.Group("/")
	authed.Use(
		middleware.Lang(),
		middleware.AccessLogWithLogger(lg),
		middleware.ContextTimeout(cfg.ContextTimeout),
		middleware.UserAuthToken(deps.Tokens),
		middleware.RateLimiter(methodLimiters),
	)
	{
		authed.GET("/notifications", notificationHandler.List)
		authed.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		authed.POST("/notifications/:id/read", notificationHandler.MarkRead)

		authed.GET("/api/exchanges", exchangeHandler.List)
		authed.POST("/api/exchanges", exchangeHandler.Create)
		authed.POST("/api/exchanges/:id/sync", exchangeHandler.Sync)
		authed.DELETE("/api/exchanges/:id", exchangeHandler.Delete)
	}

	r.NoRoute(middleware.NoFound())
	return r
}
