package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kellan/jobwire/internal/core/errors"
)

// seedUser inserts a user row and registers cleanup. The returned id is
// the platform user id the gateway resolves against.
func seedUser(t *testing.T, role string) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	userID := uuid.New()
	_, err := testPool.Exec(ctx,
		`INSERT INTO users (id, email, role) VALUES ($1, $2, $3)`,
		userID, userID.String()+"@example.com", role,
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_, _ = testPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, userID)
	})

	return userID
}

func seedEmployer(t *testing.T, userID uuid.UUID) uuid.UUID {
	t.Helper()

	employerID := uuid.New()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO employers (id, user_id, company_name) VALUES ($1, $2, $3)`,
		employerID, userID, "Acme Corp",
	)
	require.NoError(t, err)
	return employerID
}

func seedCandidate(t *testing.T, userID uuid.UUID) uuid.UUID {
	t.Helper()

	candidateID := uuid.New()
	_, err := testPool.Exec(context.Background(),
		`INSERT INTO candidates (id, user_id) VALUES ($1, $2)`,
		candidateID, userID,
	)
	require.NoError(t, err)
	return candidateID
}

func TestDirectoryRepository_LookupRoleIDs_Employer(t *testing.T) {
	repo := NewDirectoryRepository(testPool)

	userID := seedUser(t, "EMPLOYER")
	employerID := seedEmployer(t, userID)

	roleIDs, err := repo.LookupRoleIDs(context.Background(), userID)
	require.NoError(t, err)

	require.NotNil(t, roleIDs.EmployerID)
	assert.Equal(t, employerID, *roleIDs.EmployerID)
	assert.Nil(t, roleIDs.CandidateID)
}

func TestDirectoryRepository_LookupRoleIDs_Candidate(t *testing.T) {
	repo := NewDirectoryRepository(testPool)

	userID := seedUser(t, "CANDIDATE")
	candidateID := seedCandidate(t, userID)

	roleIDs, err := repo.LookupRoleIDs(context.Background(), userID)
	require.NoError(t, err)

	require.NotNil(t, roleIDs.CandidateID)
	assert.Equal(t, candidateID, *roleIDs.CandidateID)
	assert.Nil(t, roleIDs.EmployerID)
}

func TestDirectoryRepository_LookupRoleIDs_AdminHasNoProfiles(t *testing.T) {
	repo := NewDirectoryRepository(testPool)

	userID := seedUser(t, "ADMIN")

	roleIDs, err := repo.LookupRoleIDs(context.Background(), userID)
	require.NoError(t, err)

	assert.Nil(t, roleIDs.EmployerID)
	assert.Nil(t, roleIDs.CandidateID)
}

func TestDirectoryRepository_LookupRoleIDs_UnknownUser(t *testing.T) {
	repo := NewDirectoryRepository(testPool)

	_, err := repo.LookupRoleIDs(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrUnknownUser)
}
