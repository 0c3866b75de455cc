package api_router

import (
	"net/http"

	pkgapp "github.com/haierkeys/portfolio-dash/pkg/app"

	"github.com/gin-gonic/gin"
)

// VersionHandler 版本信息处理器
type VersionHandler struct {
	info pkgapp.VersionInfo
}

func NewVersionHandler(info pkgapp.VersionInfo) *VersionHandler {
	return &VersionHandler{info: info}
}

// ServerVersion 返回服务端版本，无需认证
// @Router /api/version [get]
func (h *VersionHandler) ServerVersion(c *gin.Context) {
	pkgapp.NewResponse(c).ToData(http.StatusOK, h.info)
}
