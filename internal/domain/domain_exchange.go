package domain

import (
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// ExchangeKind 交易所类型
type ExchangeKind string

const (
	ExchangeBinance ExchangeKind = "BINANCE"
)

var supportedExchanges = []ExchangeKind{ExchangeBinance}

var exchangeDisplayNames = map[ExchangeKind]string{
	ExchangeBinance: "Binance",
}

// SupportedExchanges lists the kinds a link can be created for
func SupportedExchanges() []ExchangeKind {
	out := make([]ExchangeKind, len(supportedExchanges))
	copy(out, supportedExchanges)
	return out
}

func (k ExchangeKind) IsSupported() bool {
	for _, s := range supportedExchanges {
		if s == k {
			return true
		}
	}
	return false
}

// DisplayName 展示名称，未知类型原样返回
func (k ExchangeKind) DisplayName() string {
	if n, ok := exchangeDisplayNames[k]; ok {
		return n
	}
	return string(k)
}

// ParseExchangeKind accepts any letter case
func ParseExchangeKind(s string) (ExchangeKind, bool) {
	k := ExchangeKind(strings.ToUpper(strings.TrimSpace(s)))
	return k, k.IsSupported()
}

// LinkStatus is reported by the server; the client never derives it.
// A link that is absent from the registry is disconnected.
type LinkStatus string

const (
	LinkConnected LinkStatus = "CONNECTED"
	LinkSyncing   LinkStatus = "SYNCING"
	LinkError     LinkStatus = "ERROR"
)

func (s LinkStatus) Valid() bool {
	switch s {
	case LinkConnected, LinkSyncing, LinkError:
		return true
	}
	return false
}

// ExchangeLink 用户与一个外部交易所账户的连接
type ExchangeLink struct {
	ID           ID
	ExchangeKind ExchangeKind
	Label        string
	Status       LinkStatus
	LastSyncedAt *time.Time
}

// NeverSynced 是否从未同步
func (l *ExchangeLink) NeverSynced() bool {
	return l.LastSyncedAt == nil
}

func (l *ExchangeLink) Clone() *ExchangeLink {
	c := *l
	if l.LastSyncedAt != nil {
		t := *l.LastSyncedAt
		c.LastSyncedAt = &t
	}
	return &c
}

// Equal compares every field, timestamps by instant
func (l *ExchangeLink) Equal(o *ExchangeLink) bool {
	if l == nil || o == nil {
		return l == o
	}
	if l.ID != o.ID || l.ExchangeKind != o.ExchangeKind || l.Label != o.Label || l.Status != o.Status {
		return false
	}
	if l.LastSyncedAt == nil || o.LastSyncedAt == nil {
		return l.LastSyncedAt == nil && o.LastSyncedAt == nil
	}
	return l.LastSyncedAt.Equal(*o.LastSyncedAt)
}

// CredentialDraft stages a new link. APIKey and APISecret are write-only:
// String, GoString and MarshalLogObject never emit them.
type CredentialDraft struct {
	ExchangeKind ExchangeKind `json:"exchange" binding:"required,exchange_kind"`
	Label        string       `json:"label"`
	APIKey       string       `json:"apiKey" binding:"required"`
	APISecret    string       `json:"apiSecret" binding:"required"`
}

// DefaultDraft 默认草稿
func DefaultDraft() CredentialDraft {
	return CredentialDraft{ExchangeKind: ExchangeBinance}
}

func (d CredentialDraft) HasAPIKey() bool    { return d.APIKey != "" }
func (d CredentialDraft) HasAPISecret() bool { return d.APISecret != "" }

func (d CredentialDraft) String() string {
	return "CredentialDraft{exchange=" + string(d.ExchangeKind) +
		" label=" + strings.TrimSpace(d.Label) +
		" apiKey=" + redact(d.APIKey) +
		" apiSecret=" + redact(d.APISecret) + "}"
}

func (d CredentialDraft) GoString() string { return d.String() }

func (d CredentialDraft) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("exchange", string(d.ExchangeKind))
	enc.AddString("label", d.Label)
	enc.AddBool("hasApiKey", d.HasAPIKey())
	enc.AddBool("hasApiSecret", d.HasAPISecret())
	return nil
}

func redact(s string) string {
	if s == "" {
		return "<empty>"
	}
	return "<redacted>"
}
