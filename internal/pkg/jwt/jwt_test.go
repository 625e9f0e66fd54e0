package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)

	token, expiresAt, err := svc.GenerateAccessToken("staff-1", "ayse@example.com", "manager")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "staff-1", claims["staff_id"])
	assert.Equal(t, "ayse@example.com", claims["email"])
	assert.Equal(t, "manager", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour)
	token, expiresAt, err := svc.GenerateAccessToken("staff-1", "ayse@example.com", "employee")
	require.NoError(t, err)

	assert.False(t, svc.IsTokenRevoked(token))
	svc.RevokeToken(token, expiresAt)
	assert.True(t, svc.IsTokenRevoked(token))
}

func TestRevokeToken_PrunesExpiredEntries(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", time.Hour).(*JWTService)
	svc.RevokeToken("stale", time.Now().Add(-time.Minute).Unix())
	svc.RevokeToken("fresh", time.Now().Add(time.Hour).Unix())

	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.True(t, svc.IsTokenRevoked("fresh"))
}
