package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIdentity_Rooms_Candidate(t *testing.T) {
	userID := uuid.New()
	candID := uuid.New()

	identity := Identity{
		UserID:      userID,
		Role:        RoleCandidate,
		CandidateID: &candID,
	}

	rooms := identity.Rooms()
	assert.ElementsMatch(t, []string{
		UserRoom(userID),
		CandidateRoom(candID),
		CandidateBroadcastRoom,
	}, rooms)
}

func TestIdentity_Rooms_CandidateWithoutProfile(t *testing.T) {
	userID := uuid.New()

	identity := Identity{
		UserID: userID,
		Role:   RoleCandidate,
	}

	// A candidate user without a candidate profile still gets the
	// broadcast room, just not the per-candidate room.
	rooms := identity.Rooms()
	assert.ElementsMatch(t, []string{
		UserRoom(userID),
		CandidateBroadcastRoom,
	}, rooms)
}

func TestIdentity_Rooms_Employer(t *testing.T) {
	userID := uuid.New()
	empID := uuid.New()

	identity := Identity{
		UserID:     userID,
		Role:       RoleEmployer,
		EmployerID: &empID,
	}

	rooms := identity.Rooms()
	assert.ElementsMatch(t, []string{
		UserRoom(userID),
		EmployerRoom(empID),
	}, rooms)
}

func TestIdentity_Rooms_Admin(t *testing.T) {
	userID := uuid.New()

	identity := Identity{
		UserID: userID,
		Role:   RoleAdmin,
	}

	rooms := identity.Rooms()
	assert.ElementsMatch(t, []string{
		UserRoom(userID),
		AdminRoom,
	}, rooms)
}

func TestIsJobRoom(t *testing.T) {
	jobID := uuid.New()

	assert.True(t, IsJobRoom(JobRoom(jobID)))
	assert.False(t, IsJobRoom(UserRoom(jobID)))
	assert.False(t, IsJobRoom(AdminRoom))
	assert.False(t, IsJobRoom(CandidateBroadcastRoom))
}

func TestRole_IsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleEmployer.IsValid())
	assert.True(t, RoleCandidate.IsValid())
	assert.False(t, Role("MANAGER").IsValid())
	assert.False(t, Role("").IsValid())
}
