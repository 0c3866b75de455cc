package api_router

import (
	"net/http"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/dto"
	pkgapp "github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	apperrors "github.com/haierkeys/portfolio-dash/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 通知 API 路由处理器
type NotificationHandler struct {
	*Handler
}

// NewNotificationHandler 创建 NotificationHandler 实例
func NewNotificationHandler(h *Handler) *NotificationHandler {
	return &NotificationHandler{Handler: h}
}

// List 获取通知列表
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	list := h.Backend.ListNotifications(c.Request.Context(), pkgapp.GetUID(c))
	out := make([]*dto.NotificationDTO, 0, len(list))
	for _, n := range list {
		out = append(out, dto.NewNotificationDTO(n))
	}
	pkgapp.NewResponse(c).ToData(http.StatusOK, out)
}

// MarkRead 标记单条已读
// @Router /notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Backend.MarkRead(ctx, pkgapp.GetUID(c), domain.ID(c.Param("id"))); err != nil {
		h.logError(ctx, "NotificationHandler.MarkRead", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success)
}

// MarkAllRead 全部标记已读
// @Router /notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	h.Backend.MarkAllRead(c.Request.Context(), pkgapp.GetUID(c))
	pkgapp.NewResponse(c).ToResponse(code.Success)
}
