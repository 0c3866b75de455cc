package view

import (
	"context"
	"strings"
	"sync"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/pkg/dismiss"
	"github.com/haierkeys/portfolio-dash/pkg/eventbus"
	"golang.org/x/sync/errgroup"
)

// Regions of the header widgets in the dashboard document
var (
	BellRegion    = dismiss.Rect{X: 1100, Y: 0, Width: 48, Height: 48}
	ProfileRegion = dismiss.Rect{X: 1160, Y: 0, Width: 48, Height: 48}
)

// Dashboard composes the header widgets and the connections page
type Dashboard struct {
	Document    *dismiss.Document
	Bell        *Bell
	Profile     *ProfileMenu
	Connections *Connections

	prefs    service.PreferenceService
	mu       sync.RWMutex
	currency domain.Currency
	sub      *eventbus.Subscription
}

func NewDashboard(store *service.NotificationStore, registry *service.ExchangeRegistry,
	prefs service.PreferenceService, confirmer service.Confirmer) *Dashboard {
	doc := dismiss.NewDocument()
	return &Dashboard{
		Document:    doc,
		Bell:        NewBell(store, doc, BellRegion),
		Profile:     NewProfileMenu(prefs, doc, ProfileRegion),
		Connections: NewConnections(registry, confirmer),
		prefs:       prefs,
	}
}

// Mount loads both collections in parallel and starts following currency
// changes, seeded from the persisted value.
func (d *Dashboard) Mount(ctx context.Context) error {
	d.setCurrency(d.prefs.Currency(ctx))
	d.sub = d.prefs.SubscribeCurrency(d.setCurrency)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d.Bell.Mount(gctx)
		return nil
	})
	g.Go(func() error {
		d.Connections.Mount(gctx)
		return nil
	})
	return g.Wait()
}

func (d *Dashboard) Unmount() {
	d.sub.Unsubscribe()
	d.Bell.Unmount()
	d.Profile.Unmount()
	d.Connections.Unmount()
}

func (d *Dashboard) setCurrency(c domain.Currency) {
	d.mu.Lock()
	d.currency = c
	d.mu.Unlock()
}

// Currency is the currency the dashboard currently displays
func (d *Dashboard) Currency() domain.Currency {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.currency
}

func (d *Dashboard) Render(ctx context.Context) string {
	var sb strings.Builder
	sb.WriteString(d.Bell.Render())
	sb.WriteString("\n")
	sb.WriteString(d.Profile.Render(ctx))
	sb.WriteString("\nCurrency: " + d.Currency().Label() + "\n\n")
	sb.WriteString(d.Connections.Render())
	return sb.String()
}
