package service

import (
	"context"
	"testing"
	"time"

	"github.com/haierkeys/portfolio-dash/internal/domain"
	"github.com/haierkeys/portfolio-dash/pkg/app"
	"github.com/haierkeys/portfolio-dash/pkg/code"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin_StoresTokenAndProfile(t *testing.T) {
	repo := newMemPrefs()
	prefs := NewPreferenceService(repo, nil, nil)
	auth := NewAuthService(repo, prefs, nil)
	ctx := context.Background()

	token, err := app.NewTokenManager(app.TokenConfig{SecretKey: "k", Expiry: time.Hour}).
		Generate("42", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	sess, err := auth.Login(ctx, " "+token+" ")
	require.NoError(t, err)
	assert.False(t, sess.Opaque)
	assert.Equal(t, "42", sess.Subject)
	assert.False(t, sess.Expired(time.Now()))

	stored, err := auth.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
	assert.Equal(t, "Ada Lovelace", prefs.Profile(ctx).Name)
	assert.Equal(t, "ada@example.com", prefs.Profile(ctx).Email)
}

func TestLogin_OpaqueToken(t *testing.T) {
	repo := newMemPrefs()
	auth := NewAuthService(repo, NewPreferenceService(repo, nil, nil), nil)
	ctx := context.Background()

	sess, err := auth.Login(ctx, "opaque-session-token")
	require.NoError(t, err)
	assert.True(t, sess.Opaque)
	assert.Equal(t, "opaque-session-token", repo.values[domain.PrefKeyToken])
	_, hasName := repo.values[domain.PrefKeyUserName]
	assert.False(t, hasName)
}

func TestLogin_EmptyToken(t *testing.T) {
	auth := NewAuthService(newMemPrefs(), nil, nil)
	_, err := auth.Login(context.Background(), "  ")
	assert.True(t, errors.Is(err, code.ErrorTokenEmpty))
}

func TestLogout(t *testing.T) {
	repo := newMemPrefs()
	auth := NewAuthService(repo, nil, nil)
	ctx := context.Background()

	_, err := auth.Login(ctx, "t")
	require.NoError(t, err)
	_, ok, err := auth.Session(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, auth.Logout(ctx))
	_, ok, err = auth.Session(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionExpired(t *testing.T) {
	past := time.Now().Add(-time.Minute)
	assert.True(t, (&Session{ExpiresAt: &past}).Expired(time.Now()))
	assert.False(t, (&Session{}).Expired(time.Now()))
}
