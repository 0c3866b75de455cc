package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
)

const (
	TextLoading     = "Loading exchanges..."
	TextEmpty       = "No exchanges connected yet."
	TextNeverSynced = "Never"
)

const timeLayout = "2006-01-02 15:04:05"

// Connections is the exchange connections page with its connect modal
// Connections 交易所连接页面
type Connections struct {
	registry  *service.ExchangeRegistry
	form      *service.CredentialForm
	confirmer service.Confirmer
}

func NewConnections(registry *service.ExchangeRegistry, confirmer service.Confirmer) *Connections {
	return &Connections{
		registry:  registry,
		form:      service.NewCredentialForm(),
		confirmer: confirmer,
	}
}

// Mount reopens the registry and loads it from the server
func (c *Connections) Mount(ctx context.Context) {
	c.registry.Open()
	c.registry.FetchAll(ctx)
}

func (c *Connections) Unmount() {
	c.form.Cancel()
	c.registry.Close()
}

// Form is the modal's form model
func (c *Connections) Form() *service.CredentialForm {
	return c.form
}

func (c *Connections) Connect(ctx context.Context) (*domain.ExchangeLink, error) {
	return c.registry.Connect(ctx, c.form)
}

func (c *Connections) Sync(ctx context.Context, id domain.ID) error {
	return c.registry.Sync(ctx, id)
}

func (c *Connections) Disconnect(ctx context.Context, id domain.ID) error {
	return c.registry.Disconnect(ctx, id, c.confirmer)
}

// LastSync formats lastSyncedAt in the local zone, "Never" when absent
func LastSync(l *domain.ExchangeLink) string {
	if l.NeverSynced() {
		return TextNeverSynced
	}
	return l.LastSyncedAt.In(time.Local).Format(timeLayout)
}

func (c *Connections) Render() string {
	var sb strings.Builder
	sb.WriteString("# Exchange Connections\n\n")

	switch links := c.registry.Links(); {
	case !c.registry.Loaded():
		sb.WriteString(TextLoading + "\n")
	case len(links) == 0:
		sb.WriteString(TextEmpty + "\n")
	default:
		sb.WriteString("| ID | Exchange | Label | Status | Last Sync |\n")
		sb.WriteString("|---|---|---|---|---|\n")
		for _, l := range links {
			fmt.Fprintf(&sb, "| `%s` | %s | %s | %s | %s |\n",
				l.ID, l.ExchangeKind.DisplayName(), escapeCell(l.Label), l.Status, LastSync(l))
		}
	}

	if c.form.IsOpen() {
		d := c.form.Draft()
		sb.WriteString("\n## Connect Exchange\n\n")
		fmt.Fprintf(&sb, "- Exchange: %s\n", d.ExchangeKind.DisplayName())
		fmt.Fprintf(&sb, "- Label: %s\n", d.Label)
		fmt.Fprintf(&sb, "- API Key: %s\n", masked(d.HasAPIKey()))
		fmt.Fprintf(&sb, "- API Secret: %s\n", masked(d.HasAPISecret()))
	}
	return sb.String()
}

func masked(set bool) string {
	if set {
		return "••••••••"
	}
	return "_empty_"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
