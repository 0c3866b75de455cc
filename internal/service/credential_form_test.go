package service

import (
	"strings"
	"testing"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/haierkeys/portfolio-dash/pkg/validator"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialForm_Lifecycle(t *testing.T) {
	f := NewCredentialForm()
	assert.False(t, f.IsOpen())
	assert.Equal(t, domain.DefaultDraft(), f.Draft())

	f.Open()
	require.NoError(t, f.Update(FieldLabel, "Main"))
	require.NoError(t, f.Update(FieldAPIKey, "k"))
	f.Open()
	assert.Equal(t, "Main", f.Draft().Label, "re-opening keeps the current session")

	f.Cancel()
	assert.False(t, f.IsOpen())
	assert.Equal(t, domain.DefaultDraft(), f.Draft())

	f.Open()
	require.NoError(t, f.Update(FieldAPISecret, "s"))
	f.Reset()
	assert.True(t, f.IsOpen())
	assert.Empty(t, f.Draft().APISecret)
}

func TestCredentialForm_UpdateNormalisesExchange(t *testing.T) {
	f := NewCredentialForm()
	require.NoError(t, f.Update(FieldExchange, " binance "))
	assert.Equal(t, domain.ExchangeBinance, f.Draft().ExchangeKind)

	err := f.Update("passphrase", "x")
	assert.True(t, errors.Is(err, code.ErrorInvalidParams))
}

func TestCredentialForm_Validate(t *testing.T) {
	f := NewCredentialForm()
	f.Open()

	err := f.Validate()
	require.Error(t, err)
	fe, ok := err.(validator.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe, FieldAPIKey)
	assert.Contains(t, fe, FieldAPISecret)
	assert.NotContains(t, fe, FieldLabel)

	require.NoError(t, f.Update(FieldExchange, "FTX"))
	require.NoError(t, f.Update(FieldAPIKey, "k"))
	require.NoError(t, f.Update(FieldAPISecret, "s"))
	err = f.Validate()
	require.Error(t, err)
	assert.Equal(t, "exchange is not a supported exchange", err.(validator.FieldErrors)[FieldExchange])

	require.NoError(t, f.Update(FieldExchange, "BINANCE"))
	assert.NoError(t, f.Validate(), "label may be empty")

	require.NoError(t, f.Update(FieldLabel, strings.Repeat("Main account ", 20)))
	assert.NoError(t, f.Validate(), "label is a free display string")
}
