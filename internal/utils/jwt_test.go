package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func parseClaims(t *testing.T, raw, secret string) jwt.MapClaims {
	t.Helper()
	tok, err := jwt.Parse(raw, func(tk *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)
	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestNewAccessTokenClaims(t *testing.T) {
	at, err := NewAccessToken(testSecret, 42, "agent", 1440)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)
	require.NotEmpty(t, at.JTI)

	claims := parseClaims(t, at.Token, testSecret)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, "agent", claims["role"])
	assert.Equal(t, at.JTI, claims["jti"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC().Add(24*time.Hour), exp.Time, time.Minute)
}

func TestAccessTokenExpiry(t *testing.T) {
	at, err := NewAccessToken(testSecret, 1, "customer", -1) // already expired
	require.NoError(t, err)

	_, err = jwt.Parse(at.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessTokenTamperEvident(t *testing.T) {
	at, err := NewAccessToken(testSecret, 7, "customer", 60)
	require.NoError(t, err)

	tampered := at.Token[:len(at.Token)-2] + "xx"
	tok, err := jwt.Parse(tampered, func(tk *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	assert.Error(t, err)
	assert.False(t, tok != nil && tok.Valid)
}

func TestAccessTokenJTIUnique(t *testing.T) {
	a, err := NewAccessToken(testSecret, 1, "customer", 60)
	require.NoError(t, err)
	b, err := NewAccessToken(testSecret, 1, "customer", 60)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestNewRefreshToken(t *testing.T) {
	rt, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96) // 48 random bytes, hex encoded
	assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), rt.Exp, time.Minute)

	other, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.NotEqual(t, rt.Raw, other.Raw)

	// Hashing is deterministic and never echoes the raw value.
	assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
	assert.NotEqual(t, rt.Raw, HashRefreshRaw(rt.Raw))
}
