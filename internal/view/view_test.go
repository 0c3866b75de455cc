package view

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/internal/service"
	"github.com/haierkeys/portfolio-dash/pkg/dismiss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotifications struct {
	domain.NotificationAPI
	items []*domain.Notification
}

func (s *stubNotifications) ListNotifications(context.Context) ([]*domain.Notification, error) {
	return s.items, nil
}

type stubExchanges struct {
	domain.ExchangeAPI
	links []*domain.ExchangeLink
}

func (s *stubExchanges) ListExchanges(context.Context) ([]*domain.ExchangeLink, error) {
	return s.links, nil
}

type memRepo map[string]string

func (m memRepo) Get(_ context.Context, k string) (string, bool, error) {
	v, ok := m[k]
	return v, ok, nil
}
func (m memRepo) Set(_ context.Context, k, v string) error { m[k] = v; return nil }
func (m memRepo) Delete(_ context.Context, k string) error { delete(m, k); return nil }

func TestBell_BadgeAndDismissal(t *testing.T) {
	store := service.NewNotificationStore(&stubNotifications{items: []*domain.Notification{
		{ID: "1", Payload: map[string]any{"title": "Deposit received"}},
		{ID: "2", Read: true},
	}}, nil, nil)
	doc := dismiss.NewDocument()
	bell := NewBell(store, doc, dismiss.Rect{X: 0, Y: 0, Width: 10, Height: 10})
	defer bell.Unmount()

	assert.Equal(t, "", bell.Badge())
	bell.Mount(context.Background())
	assert.Equal(t, "1", bell.Badge())
	assert.NotContains(t, bell.Render(), "Deposit received")

	bell.Toggle()
	assert.Contains(t, bell.Render(), "- [ ] `1` Deposit received")
	assert.Contains(t, bell.Render(), "- [x] `2` 2")

	doc.DispatchPointerDown(dismiss.PointerEvent{Position: dismiss.Point{X: 5, Y: 5}})
	assert.True(t, bell.IsOpen())
	doc.DispatchPointerDown(dismiss.PointerEvent{Position: dismiss.Point{X: 50, Y: 5}})
	assert.False(t, bell.IsOpen())
}

func TestConnections_States(t *testing.T) {
	api := &stubExchanges{}
	reg := service.NewExchangeRegistry(api, nil, nil)
	page := NewConnections(reg, service.AlwaysConfirm)

	assert.Contains(t, page.Render(), TextLoading)

	page.Mount(context.Background())
	assert.Contains(t, page.Render(), TextEmpty)

	ts := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	api.links = []*domain.ExchangeLink{
		{ID: "1", ExchangeKind: domain.ExchangeBinance, Label: "Main", Status: domain.LinkConnected},
		{ID: "2", ExchangeKind: domain.ExchangeBinance, Label: "a|b", Status: domain.LinkSyncing, LastSyncedAt: &ts},
	}
	reg.FetchAll(context.Background())
	out := page.Render()
	assert.Contains(t, out, "| `1` | Binance | Main | CONNECTED | Never |")
	assert.Contains(t, out, `a\|b`)
	assert.Contains(t, out, ts.In(time.Local).Format(timeLayout))
}

func TestConnections_ModalNeverShowsSecrets(t *testing.T) {
	page := NewConnections(service.NewExchangeRegistry(&stubExchanges{}, nil, nil), nil)
	page.Form().Open()
	require.NoError(t, page.Form().Update(service.FieldAPIKey, "super-key"))
	require.NoError(t, page.Form().Update(service.FieldAPISecret, "super-secret"))

	out := page.Render()
	assert.Contains(t, out, "## Connect Exchange")
	assert.NotContains(t, out, "super-key")
	assert.NotContains(t, out, "super-secret")

	page.Unmount()
	assert.False(t, page.Form().IsOpen())
	assert.Empty(t, page.Form().Draft().APIKey)
}

func TestDashboard_FollowsCurrencyChanges(t *testing.T) {
	repo := memRepo{domain.PrefKeyCurrency: "EUR", domain.PrefKeyUserName: "Ada Lovelace"}
	prefs := service.NewPreferenceService(repo, nil, nil)
	d := NewDashboard(
		service.NewNotificationStore(&stubNotifications{}, nil, nil),
		service.NewExchangeRegistry(&stubExchanges{}, nil, nil),
		prefs, service.AlwaysConfirm)
	ctx := context.Background()

	require.NoError(t, d.Mount(ctx))
	assert.Equal(t, domain.CurrencyEUR, d.Currency())

	d.Profile.Open()
	require.NoError(t, d.Profile.SetCurrency(ctx, domain.CurrencyUSD))
	assert.Equal(t, domain.CurrencyUSD, d.Currency())

	out := d.Render(ctx)
	assert.Contains(t, out, "**AL**")
	assert.Contains(t, out, "- [x] $ USD")
	assert.Contains(t, out, "Currency: $ USD")
	assert.True(t, strings.Contains(out, TextEmpty))

	// 点击铃铛区域会关闭资料菜单
	d.Document.DispatchPointerDown(dismiss.PointerEvent{Position: dismiss.Point{X: 1110, Y: 10}})
	assert.False(t, d.Profile.IsOpen())

	d.Unmount()
	require.NoError(t, prefs.SetCurrency(ctx, domain.CurrencyINR))
	assert.Equal(t, domain.CurrencyUSD, d.Currency(), "unmounted dashboard stops listening")
}

func TestDashboard_OutsidePointerDownClosesBellAndProfile(t *testing.T) {
	prefs := service.NewPreferenceService(memRepo{}, nil, nil)
	d := NewDashboard(
		service.NewNotificationStore(&stubNotifications{}, nil, nil),
		service.NewExchangeRegistry(&stubExchanges{}, nil, nil),
		prefs, service.AlwaysConfirm)
	require.Equal(t, 2, d.Document.Listeners())

	d.Bell.Open()
	d.Profile.Open()

	// 铃铛区域内：铃铛保持打开，资料菜单关闭
	d.Document.DispatchPointerDown(dismiss.PointerEvent{Position: dismiss.Point{X: BellRegion.X + 1, Y: 1}})
	assert.True(t, d.Bell.IsOpen())
	assert.False(t, d.Profile.IsOpen())

	d.Profile.Open()
	d.Document.DispatchPointerDown(dismiss.PointerEvent{Position: dismiss.Point{X: 10, Y: 400}})
	assert.False(t, d.Bell.IsOpen())
	assert.False(t, d.Profile.IsOpen())

	d.Unmount()
	assert.Equal(t, 0, d.Document.Listeners())
}

func TestDashboard_RemountLoadsAgain(t *testing.T) {
	api := &stubExchanges{links: []*domain.ExchangeLink{
		{ID: "1", ExchangeKind: domain.ExchangeBinance, Label: "Main", Status: domain.LinkConnected},
	}}
	store := service.NewNotificationStore(&stubNotifications{items: []*domain.Notification{{ID: "1"}}}, nil, nil)
	reg := service.NewExchangeRegistry(api, nil, nil)
	prefs := service.NewPreferenceService(memRepo{}, nil, nil)
	ctx := context.Background()

	first := NewDashboard(store, reg, prefs, service.AlwaysConfirm)
	require.NoError(t, first.Mount(ctx))
	first.Unmount()

	second := NewDashboard(store, reg, prefs, service.AlwaysConfirm)
	require.NoError(t, second.Mount(ctx))
	defer second.Unmount()

	assert.Equal(t, "1", second.Bell.Badge())
	out := second.Connections.Render()
	assert.NotContains(t, out, TextLoading)
	assert.Contains(t, out, "| Main |")
}
