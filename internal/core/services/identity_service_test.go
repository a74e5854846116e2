package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/mocks"
)

func TestIdentityService_Verify_Success(t *testing.T) {
	tokens := mocks.NewMockTokenVerifier()
	directory := mocks.NewMockIdentityDirectory()
	svc := NewIdentityService(tokens, directory)

	userID := uuid.New()
	candID := uuid.New()

	tokens.On("Verify", "good-token").Return(&domain.TokenClaims{
		UserID:    userID,
		Email:     "jane@example.com",
		Role:      domain.RoleCandidate,
		TokenKind: domain.TokenAccess,
	}, nil)
	directory.On("LookupRoleIDs", mock.Anything, userID).Return(domain.RoleIDs{
		CandidateID: &candID,
	}, nil)

	identity, err := svc.Verify(context.Background(), "good-token")
	require.NoError(t, err)

	assert.Equal(t, userID, identity.UserID)
	assert.Equal(t, domain.RoleCandidate, identity.Role)
	require.NotNil(t, identity.CandidateID)
	assert.Equal(t, candID, *identity.CandidateID)
	assert.Nil(t, identity.EmployerID)

	tokens.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestIdentityService_Verify_RejectsRefreshToken(t *testing.T) {
	tokens := mocks.NewMockTokenVerifier()
	directory := mocks.NewMockIdentityDirectory()
	svc := NewIdentityService(tokens, directory)

	tokens.On("Verify", "refresh-token").Return(&domain.TokenClaims{
		UserID:    uuid.New(),
		Role:      domain.RoleCandidate,
		TokenKind: domain.TokenRefresh,
	}, nil)

	_, err := svc.Verify(context.Background(), "refresh-token")
	assert.ErrorIs(t, err, apperrors.ErrWrongTokenType)

	// The directory must never be hit for a rejected token.
	directory.AssertNotCalled(t, "LookupRoleIDs", mock.Anything, mock.Anything)
}

func TestIdentityService_Verify_InvalidToken(t *testing.T) {
	tokens := mocks.NewMockTokenVerifier()
	directory := mocks.NewMockIdentityDirectory()
	svc := NewIdentityService(tokens, directory)

	tokens.On("Verify", "bad-token").Return(nil, apperrors.ErrInvalidToken)

	_, err := svc.Verify(context.Background(), "bad-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestIdentityService_Verify_UnknownUser(t *testing.T) {
	tokens := mocks.NewMockTokenVerifier()
	directory := mocks.NewMockIdentityDirectory()
	svc := NewIdentityService(tokens, directory)

	userID := uuid.New()
	tokens.On("Verify", "orphan-token").Return(&domain.TokenClaims{
		UserID:    userID,
		Role:      domain.RoleEmployer,
		TokenKind: domain.TokenAccess,
	}, nil)
	directory.On("LookupRoleIDs", mock.Anything, userID).Return(domain.RoleIDs{}, apperrors.ErrUnknownUser)

	_, err := svc.Verify(context.Background(), "orphan-token")
	assert.ErrorIs(t, err, apperrors.ErrUnknownUser)
}
