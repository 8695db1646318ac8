package jwt

import (
	"context"
	"testing"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() Service {
	return NewJWTService("test-secret-key", "1h", "24h")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService()

	tokenString, expiresAt, err := svc.GenerateAccessToken(7, "somchai", user.RoleBoss)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "7", claims["user_id"])
	assert.Equal(t, "somchai", claims["username"])
	assert.Equal(t, "boss", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestValidateRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateAccessToken(7, "somchai", user.RoleUser)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestValidateRefreshToken_RejectsRevoked(t *testing.T) {
	svc := newTestService()

	tokenString, _, err := svc.GenerateRefreshToken(7)
	require.NoError(t, err)

	svc.RevokeToken(tokenString)

	_, err = svc.ValidateRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestValidateRefreshToken_RejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateRefreshToken("not-a-jwt")
	assert.Error(t, err)
}

func TestRevocation(t *testing.T) {
	svc := newTestService()

	assert.False(t, svc.IsTokenRevoked("some-token"))
	svc.RevokeToken("some-token")
	assert.True(t, svc.IsTokenRevoked("some-token"))
}
