package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestIDAcceptsNumbersAndStrings(t *testing.T) {
	var out struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"a":17,"b":"65f1c0","c":null}`), &out))
	assert.Equal(t, ID("17"), out.A)
	assert.Equal(t, ID("65f1c0"), out.B)
	assert.True(t, out.C.IsZero())

	var bad ID
	assert.Error(t, bad.UnmarshalJSON([]byte(`{}`)))
}

func TestCredentialDraftNeverPrintsSecrets(t *testing.T) {
	d := CredentialDraft{ExchangeKind: ExchangeBinance, Label: "Main", APIKey: "key-123", APISecret: "sec-456"}

	for _, s := range []string{d.String(), fmt.Sprintf("%v", d), fmt.Sprintf("%+v", d), fmt.Sprintf("%#v", d)} {
		assert.NotContains(t, s, "key-123")
		assert.NotContains(t, s, "sec-456")
		assert.Contains(t, s, "Main")
	}

	enc := zapcore.NewMapObjectEncoder()
	require.NoError(t, d.MarshalLogObject(enc))
	assert.Equal(t, true, enc.Fields["hasApiKey"])
	assert.Equal(t, "BINANCE", enc.Fields["exchange"])
	for _, v := range enc.Fields {
		assert.NotEqual(t, "key-123", v)
		assert.NotEqual(t, "sec-456", v)
	}
}

func TestExchangeKind(t *testing.T) {
	k, ok := ParseExchangeKind(" binance ")
	assert.True(t, ok)
	assert.Equal(t, ExchangeBinance, k)
	assert.Equal(t, "Binance", k.DisplayName())

	_, ok = ParseExchangeKind("KRAKEN")
	assert.False(t, ok)
	assert.Equal(t, ExchangeBinance, DefaultDraft().ExchangeKind)
}

func TestExchangeLinkEqualAndClone(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)
	a := &ExchangeLink{ID: "1", ExchangeKind: ExchangeBinance, Label: "Main", Status: LinkConnected, LastSyncedAt: &ts}
	b := a.Clone()

	assert.True(t, a.Equal(b))
	assert.NotSame(t, a.LastSyncedAt, b.LastSyncedAt)

	later := ts.Add(time.Minute)
	b.LastSyncedAt = &later
	assert.False(t, a.Equal(b))

	b.LastSyncedAt = nil
	assert.False(t, a.Equal(b))
	assert.True(t, b.NeverSynced())
}

func TestCountUnread(t *testing.T) {
	list := []*Notification{{ID: "1"}, {ID: "2", Read: true}, nil}
	assert.Equal(t, 1, CountUnread(list))
	assert.Equal(t, 0, CountUnread(nil))
}

func TestNotificationTitle(t *testing.T) {
	n := &Notification{ID: "9", Payload: map[string]any{"message": "BTC crossed 60k"}}
	assert.Equal(t, "BTC crossed 60k", n.Title())
	assert.Equal(t, "9", (&Notification{ID: "9"}).Title())
}

func TestCurrency(t *testing.T) {
	assert.Equal(t, "₹ INR", CurrencyINR.Label())
	assert.Equal(t, "$ USD", CurrencyUSD.Label())
	assert.Equal(t, "€ EUR", CurrencyEUR.Label())

	c, ok := ParseCurrency("usd")
	assert.True(t, ok)
	assert.Equal(t, CurrencyUSD, c)

	_, ok = ParseCurrency("GBP")
	assert.False(t, ok)
}

func TestProfileInitials(t *testing.T) {
	assert.Equal(t, "U", DefaultProfile().Initials())
	assert.Equal(t, "AL", Profile{Name: "ada  lovelace"}.Initials())
	assert.Equal(t, "", Profile{}.Initials())
}
