package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *JWTManager {
	return NewJWTManager(JWTConfig{
		Secret:        "test-secret",
		Expiry:        time.Hour,
		RefreshExpiry: 24 * time.Hour,
		Issuer:        "university-finder-test",
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	manager := newTestManager()

	token, err := manager.GenerateAccessToken(7, "alice@example.com", "user")
	require.NoError(t, err)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "university-finder-test", claims.Issuer)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken(7, "alice@example.com", "user")
	require.NoError(t, err)

	other := NewJWTManager(JWTConfig{Secret: "different-secret", Expiry: time.Hour})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateExpiredToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{
		Secret: "test-secret",
		Expiry: -time.Minute,
	})

	token, err := manager.GenerateAccessToken(7, "alice@example.com", "user")
	require.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRefreshAccessToken(t *testing.T) {
	manager := newTestManager()

	refresh, err := manager.GenerateRefreshToken(7, "alice@example.com", "admin")
	require.NoError(t, err)

	access, err := manager.RefreshAccessToken(refresh)
	require.NoError(t, err)

	claims, err := manager.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.TokenType)
	assert.Equal(t, "admin", claims.Role)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	manager := newTestManager()

	access, err := manager.GenerateAccessToken(7, "alice@example.com", "user")
	require.NoError(t, err)

	_, err = manager.RefreshAccessToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
