package services

import (
	"context"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/ports"
)

// IdentityService turns a raw bearer credential into a verified Identity.
// It is stateless: the same credential against the same directory state
// always yields the same result.
type IdentityService struct {
	tokens    ports.TokenVerifier
	directory ports.IdentityDirectory
}

// Ensure IdentityService implements the IdentityVerifier port.
var _ ports.IdentityVerifier = (*IdentityService)(nil)

func NewIdentityService(tokens ports.TokenVerifier, directory ports.IdentityDirectory) *IdentityService {
	return &IdentityService{
		tokens:    tokens,
		directory: directory,
	}
}

// Verify validates the credential and resolves the caller's role-scoped
// identifiers. Only tokens of the access class are accepted.
func (s *IdentityService) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	claims, err := s.tokens.Verify(credential)
	if err != nil {
		return domain.Identity{}, err
	}

	if claims.TokenKind != domain.TokenAccess {
		return domain.Identity{}, apperrors.ErrWrongTokenType
	}

	roleIDs, err := s.directory.LookupRoleIDs(ctx, claims.UserID)
	if err != nil {
		return domain.Identity{}, err
	}

	return domain.Identity{
		UserID:      claims.UserID,
		Email:       claims.Email,
		Role:        claims.Role,
		EmployerID:  roleIDs.EmployerID,
		CandidateID: roleIDs.CandidateID,
	}, nil
}
