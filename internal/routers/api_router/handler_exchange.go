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

// ExchangeHandler 交易所连接 API 路由处理器
type ExchangeHandler struct {
	*Handler
}

// NewExchangeHandler 创建 ExchangeHandler 实例
func NewExchangeHandler(h *Handler) *ExchangeHandler {
	return &ExchangeHandler{Handler: h}
}

// List 获取已连接的交易所
// @Router /api/exchanges [get]
func (h *ExchangeHandler) List(c *gin.Context) {
	links := h.Backend.ListExchanges(c.Request.Context(), pkgapp.GetUID(c))
	out := make([]*dto.ExchangeLinkDTO, 0, len(links))
	for _, l := range links {
		out = append(out, dto.NewExchangeLinkDTO(l))
	}
	pkgapp.NewResponse(c).ToData(http.StatusOK, out)
}

// Create 连接交易所账户
// @Router /api/exchanges [post]
func (h *ExchangeHandler) Create(c *gin.Context) {
	params := &dto.ExchangeCreateRequest{}
	if !h.bindJSON(c, params, "ExchangeHandler.Create") {
		return
	}

	kind, ok := domain.ParseExchangeKind(params.Exchange)
	if !ok {
		apperrors.ErrorResponse(c, code.ErrorExchangeUnsupported.WithDetails(params.Exchange))
		return
	}

	ctx := c.Request.Context()
	link, err := h.Backend.CreateExchange(ctx, pkgapp.GetUID(c), domain.CredentialDraft{
		ExchangeKind: kind,
		Label:        params.Label,
		APIKey:       params.APIKey,
		APISecret:    params.APISecret,
	})
	if err != nil {
		h.logError(ctx, "ExchangeHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToData(http.StatusCreated, dto.NewExchangeLinkDTO(link))
}

// Sync 触发同步
// @Router /api/exchanges/{id}/sync [post]
func (h *ExchangeHandler) Sync(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Backend.SyncExchange(ctx, pkgapp.GetUID(c), domain.ID(c.Param("id"))); err != nil {
		h.logError(ctx, "ExchangeHandler.Sync", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success)
}

// Delete 断开交易所
// @Router /api/exchanges/{id} [delete]
func (h *ExchangeHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.Backend.DeleteExchange(ctx, pkgapp.GetUID(c), domain.ID(c.Param("id"))); err != nil {
		h.logError(ctx, "ExchangeHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success)
}
