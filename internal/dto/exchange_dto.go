// Package dto Defines data transfer objects (request bodies and wire records)
// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import (
	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/timex"
)

// ExchangeCreateRequest Request body for linking an exchange account
// 连接交易所请求参数
type ExchangeCreateRequest struct {
	Exchange  string `json:"exchange" binding:"required"`  // Exchange kind, e.g. BINANCE // 交易所类型
	Label     string `json:"label"`                        // Display label, may be empty // 展示名称
	APIKey    string `json:"apiKey" binding:"required"`    // API key // API Key
	APISecret string `json:"apiSecret" binding:"required"` // API secret // API Secret
}

// NewExchangeCreateRequest 从草稿构造请求
func NewExchangeCreateRequest(d domain.CredentialDraft) ExchangeCreateRequest {
	return ExchangeCreateRequest{
		Exchange:  string(d.ExchangeKind),
		Label:     d.Label,
		APIKey:    d.APIKey,
		APISecret: d.APISecret,
	}
}

// ---------------- DTO / Response ----------------

// ExchangeLinkDTO Exchange connection record
// ExchangeLinkDTO 交易所连接数据传输对象
type ExchangeLinkDTO struct {
	ID           domain.ID  `json:"id"`           // Server-assigned id // 服务端分配的 ID
	Exchange     string     `json:"exchange"`     // Exchange kind // 交易所类型
	Label        string     `json:"label"`        // Display label // 展示名称
	Status       string     `json:"status"`       // CONNECTED, SYNCING or ERROR // 连接状态
	LastSyncedAt timex.Time `json:"lastSyncedAt"` // null when never synced // 最后同步时间
}

// ToDomain converts the wire record. A missing status means CONNECTED.
func (d *ExchangeLinkDTO) ToDomain() *domain.ExchangeLink {
	l := &domain.ExchangeLink{
		ID:           d.ID,
		ExchangeKind: domain.ExchangeKind(d.Exchange),
		Label:        d.Label,
		Status:       domain.LinkStatus(d.Status),
	}
	if l.Status == "" {
		l.Status = domain.LinkConnected
	}
	if !d.LastSyncedAt.IsZero() {
		t := d.LastSyncedAt.Std()
		l.LastSyncedAt = &t
	}
	return l
}

// NewExchangeLinkDTO 领域模型转传输对象
func NewExchangeLinkDTO(l *domain.ExchangeLink) *ExchangeLinkDTO {
	d := &ExchangeLinkDTO{
		ID:       l.ID,
		Exchange: string(l.ExchangeKind),
		Label:    l.Label,
		Status:   string(l.Status),
	}
	if l.LastSyncedAt != nil {
		d.LastSyncedAt = timex.Time(*l.LastSyncedAt)
	}
	return d
}
