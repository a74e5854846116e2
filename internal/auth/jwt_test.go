package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	userID := uuid.New()

	token, err := tm.GenerateAccessToken(userID, "jane@example.com", domain.RoleCandidate)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, domain.RoleCandidate, claims.Role)
	assert.Equal(t, domain.TokenAccess, claims.TokenKind)
}

func TestTokenManager_RefreshTokenCarriesKind(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := tm.GenerateRefreshToken(uuid.New(), "jane@example.com", domain.RoleEmployer)
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, domain.TokenRefresh, claims.TokenKind)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute, 7*24*time.Hour)

	token, err := tm.GenerateAccessToken(uuid.New(), "jane@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)
	other := NewTokenManager("other-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := tm.GenerateAccessToken(uuid.New(), "jane@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_RejectsTamperedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	token, err := tm.GenerateAccessToken(uuid.New(), "jane@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tm.Verify(tampered)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 15*time.Minute, 7*24*time.Hour)

	_, err := tm.Verify("not-a-jwt")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
