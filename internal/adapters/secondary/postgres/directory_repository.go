package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/ports"
)

// DirectoryRepository resolves a user's employer and candidate profile ids
// from the platform's identity tables.
type DirectoryRepository struct {
	pool *pgxpool.Pool
}

var _ ports.IdentityDirectory = (*DirectoryRepository)(nil)

func NewDirectoryRepository(pool *pgxpool.Pool) *DirectoryRepository {
	return &DirectoryRepository{pool: pool}
}

// LookupRoleIDs returns the role-scoped profile ids for the given user.
// A user has at most one employer profile and at most one candidate
// profile; both may be absent (admins have neither).
func (r *DirectoryRepository) LookupRoleIDs(ctx context.Context, userID uuid.UUID) (domain.RoleIDs, error) {
	const query = `
SELECT u.id, e.id, c.id
FROM users u
LEFT JOIN employers e ON e.user_id = u.id
LEFT JOIN candidates c ON c.user_id = u.id
WHERE u.id = $1`

	var (
		id          pgtype.UUID
		employerID  pgtype.UUID
		candidateID pgtype.UUID
	)

	err := r.pool.QueryRow(ctx, query, userID).Scan(&id, &employerID, &candidateID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RoleIDs{}, apperrors.ErrUnknownUser
		}
		return domain.RoleIDs{}, fmt.Errorf("looking up role ids: %w", err)
	}

	var roleIDs domain.RoleIDs
	if employerID.Valid {
		eid := uuid.UUID(employerID.Bytes)
		roleIDs.EmployerID = &eid
	}
	if candidateID.Valid {
		cid := uuid.UUID(candidateID.Bytes)
		roleIDs.CandidateID = &cid
	}

	return roleIDs, nil
}
