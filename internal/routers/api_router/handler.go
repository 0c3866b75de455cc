// Package api_router 提供 HTTP API 路由处理器
package api_router

import (
	"context"

	"github.com/haierkeys/portfolio-dash/internal/devserver"
	"github.com/haierkeys/portfolio-dash/internal/middleware"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	apperrors "github.com/haierkeys/portfolio-dash/pkg/errors"
	"github.com/haierkeys/portfolio-dash/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 基础 Handler 结构体
// 所有 API Handler 都嵌入此结构体以获得依赖
type Handler struct {
	Backend   *devserver.Backend
	Validator *validator.Validator
	Logger    *zap.Logger
}

// NewHandler 创建基础 Handler 实例
func NewHandler(b *devserver.Backend, v *validator.Validator, lg *zap.Logger) *Handler {
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Handler{Backend: b, Validator: v, Logger: lg}
}

// bindJSON 绑定并验证请求体，失败时已写出错误响应
func (h *Handler) bindJSON(c *gin.Context, obj any, method string) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	h.Logger.Warn(method+".BindAndValid err", zap.Error(err))

	if fe := h.Validator.Translate(err, middleware.GetLang(c)); len(fe) > 0 {
		apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails(fe.Error()))
		return false
	}
	apperrors.ErrorResponse(c, code.ErrorInvalidParams.WithDetails(err.Error()))
	return false
}

func (h *Handler) logError(ctx context.Context, method string, err error) {
	h.Logger.Warn(method,
		zap.String("trace-id", middleware.GetTraceID(ctx)),
		zap.Error(err))
}
