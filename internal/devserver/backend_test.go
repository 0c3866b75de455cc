package devserver

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(seed bool) (*Backend, time.Time) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	n := 0
	b := NewBackend(seed, nil,
		WithClock(func() time.Time { return now }),
		WithIDs(func() domain.ID { n++; return domain.ID(fmt.Sprintf("id-%d", n)) }),
	)
	return b, now
}

func TestSeededNotifications(t *testing.T) {
	b, _ := newTestBackend(true)
	list := b.ListNotifications(context.Background(), "u")
	require.Len(t, list, 2)
	assert.Equal(t, 1, domain.CountUnread(list))

	assert.Empty(t, NewBackend(false, nil).ListNotifications(context.Background(), "u"))
}

func TestListReturnsCopies(t *testing.T) {
	b, _ := newTestBackend(true)
	ctx := context.Background()
	list := b.ListNotifications(ctx, "u")
	list[0].Read = true
	list[0].Payload["title"] = "changed"

	again := b.ListNotifications(ctx, "u")
	assert.False(t, again[0].Read)
	assert.Equal(t, "Welcome to Portfolio Dash", again[0].Title())
}

func TestCreateSyncDelete(t *testing.T) {
	b, now := newTestBackend(false)
	ctx := context.Background()

	l, err := b.CreateExchange(ctx, "u", domain.CredentialDraft{
		ExchangeKind: domain.ExchangeBinance, Label: "Main", APIKey: "k", APISecret: "s",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ID("id-1"), l.ID)
	assert.Equal(t, domain.LinkConnected, l.Status)
	assert.Nil(t, l.LastSyncedAt)

	require.NoError(t, b.SyncExchange(ctx, "u", l.ID))
	links := b.ListExchanges(ctx, "u")
	require.Len(t, links, 1)
	require.NotNil(t, links[0].LastSyncedAt)
	assert.True(t, now.Equal(*links[0].LastSyncedAt))

	require.NoError(t, b.DeleteExchange(ctx, "u", l.ID))
	assert.Empty(t, b.ListExchanges(ctx, "u"))
	assert.ErrorIs(t, b.DeleteExchange(ctx, "u", l.ID), code.ErrorExchangeNotFound)
	assert.ErrorIs(t, b.SyncExchange(ctx, "u", l.ID), code.ErrorExchangeNotFound)
}

func TestCreateRejectsBadDrafts(t *testing.T) {
	b, _ := newTestBackend(false)
	ctx := context.Background()

	_, err := b.CreateExchange(ctx, "u", domain.CredentialDraft{ExchangeKind: "KRAKEN", APIKey: "k", APISecret: "s"})
	assert.ErrorIs(t, err, code.ErrorExchangeUnsupported)

	_, err = b.CreateExchange(ctx, "u", domain.CredentialDraft{ExchangeKind: domain.ExchangeBinance, APIKey: "k"})
	assert.ErrorIs(t, err, code.ErrorCredentialInvalid)

	assert.Empty(t, b.ListExchanges(ctx, "u"))
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	b, _ := newTestBackend(true)
	ctx := context.Background()
	b.Notify("u", map[string]any{"title": "extra"})

	list := b.ListNotifications(ctx, "u")
	require.Len(t, list, 3)
	assert.Equal(t, 2, domain.CountUnread(list))

	require.NoError(t, b.MarkRead(ctx, "u", list[0].ID))
	require.NoError(t, b.MarkRead(ctx, "u", list[0].ID))
	assert.Equal(t, 1, domain.CountUnread(b.ListNotifications(ctx, "u")))

	assert.Equal(t, 1, b.MarkAllRead(ctx, "u"))
	assert.Equal(t, 0, b.MarkAllRead(ctx, "u"))
	assert.ErrorIs(t, b.MarkRead(ctx, "u", "missing"), code.ErrorNotificationNotFound)
}
