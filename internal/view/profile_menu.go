package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/pkg/dismiss"
)

// ProfileMenu shows identity and the preferred currency
type ProfileMenu struct {
	toggle
	prefs service.PreferenceService
}

func NewProfileMenu(prefs service.PreferenceService, doc *dismiss.Document, region dismiss.Region) *ProfileMenu {
	m := &ProfileMenu{prefs: prefs}
	m.attach(doc, region)
	return m
}

func (m *ProfileMenu) Unmount() {
	m.detach()
}

// SetCurrency persists and broadcasts the new currency
func (m *ProfileMenu) SetCurrency(ctx context.Context, c domain.Currency) error {
	return m.prefs.SetCurrency(ctx, c)
}

func (m *ProfileMenu) Render(ctx context.Context) string {
	p := m.prefs.Profile(ctx)
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n", p.Initials())
	if !m.IsOpen() {
		return sb.String()
	}

	current := m.prefs.Currency(ctx)
	fmt.Fprintf(&sb, "\n**%s**  \n%s\n\n", p.Name, p.Email)
	sb.WriteString("Preferred Currency:\n\n")
	for _, c := range domain.SupportedCurrencies() {
		mark := " "
		if c == current {
			mark = "x"
		}
		fmt.Fprintf(&sb, "- [%s] %s\n", mark, c.Label())
	}
	return sb.String()
}
