package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate("42", "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	claims, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "Ada Lovelace", claims.Nickname)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)

	// 由于只存了秒级 Unix 戳，允许 1 秒内的误差
	expected := time.Now().Add(cfg.Expiry).Unix()
	assert.InDelta(t, expected, claims.ExpiresAt.Unix(), 1)
}

func TestTokenManager_WrongKey(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "a"})
	other := NewTokenManager(TokenConfig{SecretKey: "b"})

	token, err := other.Generate("1", "n", "e@x.io")
	require.NoError(t, err)

	assert.Error(t, tm.Validate(token))
	assert.Error(t, tm.Validate(token+"tampered"))
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k", Expiry: -time.Minute})

	token, err := tm.Generate("1", "n", "e@x.io")
	require.NoError(t, err)
	assert.Error(t, tm.Validate(token))

	// 客户端仍然可以读取过期 Token 的内容
	claims, err := ParseUnverified(token)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Before(time.Now()))
}

func TestParseUnverified_Garbage(t *testing.T) {
	_, err := ParseUnverified("not-a-jwt")
	assert.Error(t, err)
}

func TestNewTokenManager_Defaults(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k"}).(*tokenManager)
	assert.Equal(t, 7*24*time.Hour, tm.config.Expiry)
	assert.Equal(t, DefaultTokenIssuer, tm.config.Issuer)
}
