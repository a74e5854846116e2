package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Room name families. Identity rooms are assigned by the gateway at
// registration time; job rooms are joined and left on client request.
const (
	// AdminRoom is joined by every admin connection.
	AdminRoom = "admin"

	// CandidateBroadcastRoom is joined by every candidate connection and
	// receives job:published events. It replaces the wildcard addressing
	// the platform previously attempted.
	CandidateBroadcastRoom = "role:candidate"

	jobRoomPrefix = "job:"
)

// UserRoom names the per-user room every connection joins.
func UserRoom(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// EmployerRoom names the room shared by all connections of one employer.
func EmployerRoom(employerID uuid.UUID) string {
	return "employer:" + employerID.String()
}

// CandidateRoom names the room shared by all connections of one candidate.
func CandidateRoom(candidateID uuid.UUID) string {
	return "candidate:" + candidateID.String()
}

// JobRoom names the ad-hoc room clients join to watch a specific job.
func JobRoom(jobID uuid.UUID) string {
	return jobRoomPrefix + jobID.String()
}

// IsJobRoom reports whether a room name belongs to the ad-hoc job family,
// which is the only family subject to the per-connection room limit.
func IsJobRoom(room string) bool {
	return strings.HasPrefix(room, jobRoomPrefix)
}
