package auth

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefulapp/plateful-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("anything", "not-a-phc-string")
	require.NoError(t, err)
	assert.False(t, ok)
}

func newTestTokenService(t *testing.T, accessDuration time.Duration) *TokenService {
	t.Helper()

	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	ts, err := NewTokenService(hex.EncodeToString(key), accessDuration, 30*24*time.Hour)
	require.NoError(t, err)
	return ts
}

func TestAccessTokenRoundTrip(t *testing.T) {
	ts := newTestTokenService(t, 15*time.Minute)

	user := &domain.User{ID: "usr-test", Email: "cook@example.com"}
	token, err := ts.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr-test", claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)
	assert.Equal(t, "usr-test", claims.Subject)
}

func TestExpiredAccessTokenRejected(t *testing.T) {
	ts := newTestTokenService(t, -time.Minute)

	token, err := ts.GenerateAccessToken(&domain.User{ID: "usr-test", Email: "cook@example.com"})
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenFromDifferentKeyRejected(t *testing.T) {
	ts1 := newTestTokenService(t, 15*time.Minute)
	ts2 := newTestTokenService(t, 15*time.Minute)

	token, err := ts1.GenerateAccessToken(&domain.User{ID: "usr-test", Email: "cook@example.com"})
	require.NoError(t, err)

	_, err = ts2.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestLoadOrGenerateKeyIsStable(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestHashRefreshTokenDeterministic(t *testing.T) {
	assert.Equal(t, HashRefreshToken("abc"), HashRefreshToken("abc"))
	assert.NotEqual(t, HashRefreshToken("abc"), HashRefreshToken("abd"))
}
