package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateAccessToken("user-1", "alice", []string{"USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"USER"}, claims.Roles)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, "travelgo-booking", claims.Issuer)
}

func TestGenerateAndValidateRefreshToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.GenerateRefreshToken("user-1", "alice")
	require.NoError(t, err)

	claims, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateRejectsWrongTokenType(t *testing.T) {
	svc := newTestService()

	refresh, err := svc.GenerateRefreshToken("user-1", "alice")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	other := NewService("different-secret", "different-secret", 15*time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "alice", []string{"USER"})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-access-secret", "test-refresh-secret", -time.Minute, -time.Minute)

	token, err := svc.GenerateAccessToken("user-1", "alice", []string{"USER"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService()

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}

func TestIsTokenExpired(t *testing.T) {
	fresh := newTestService()
	stale := NewService("test-access-secret", "test-refresh-secret", -time.Minute, -time.Minute)

	live, err := fresh.GenerateAccessToken("user-1", "alice", nil)
	require.NoError(t, err)
	expired, err := stale.GenerateAccessToken("user-1", "alice", nil)
	require.NoError(t, err)

	assert.False(t, fresh.IsTokenExpired(live))
	assert.True(t, fresh.IsTokenExpired(expired))
	assert.True(t, fresh.IsTokenExpired("not-a-token"))
}

func TestExtractClaims(t *testing.T) {
	svc := newTestService()
	other := NewService("different-secret", "different-secret", 15*time.Minute, time.Hour)

	token, err := svc.GenerateAccessToken("user-1", "alice", []string{"ADMIN"})
	require.NoError(t, err)

	// Extraction does not verify the signature.
	claims, err := other.ExtractClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
}
