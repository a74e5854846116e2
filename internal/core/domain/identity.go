package domain

import (
	"github.com/google/uuid"
)

// Role is the platform-level role carried in the token claims.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleEmployer  Role = "EMPLOYER"
	RoleCandidate Role = "CANDIDATE"
)

// IsValid reports whether the role is one of the known platform roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEmployer, RoleCandidate:
		return true
	}
	return false
}

// TokenKind distinguishes access tokens from refresh tokens. The gateway
// only ever accepts the access kind.
type TokenKind string

const (
	TokenAccess  TokenKind = "access"
	TokenRefresh TokenKind = "refresh"
)

// TokenClaims is the verified claim set extracted from a bearer token.
type TokenClaims struct {
	UserID    uuid.UUID
	Email     string
	Role      Role
	TokenKind TokenKind
}

// RoleIDs holds the role-scoped identifiers resolved from the directory.
// At most one of the two is set for a given user.
type RoleIDs struct {
	EmployerID  *uuid.UUID
	CandidateID *uuid.UUID
}

// Identity is the verified identity attached to a connection at
// authentication time. It never changes for the lifetime of the connection.
type Identity struct {
	UserID      uuid.UUID
	Email       string
	Role        Role
	EmployerID  *uuid.UUID
	CandidateID *uuid.UUID
}

// Rooms returns the identity rooms this connection is auto-joined to:
// always the user room, plus the role room when the role-scoped id is
// known. Candidates additionally join the broadcast room used for
// job:published fanout.
func (i Identity) Rooms() []string {
	rooms := []string{UserRoom(i.UserID)}

	switch i.Role {
	case RoleEmployer:
		if i.EmployerID != nil {
			rooms = append(rooms, EmployerRoom(*i.EmployerID))
		}
	case RoleCandidate:
		if i.CandidateID != nil {
			rooms = append(rooms, CandidateRoom(*i.CandidateID))
		}
		rooms = append(rooms, CandidateBroadcastRoom)
	case RoleAdmin:
		rooms = append(rooms, AdminRoom)
	}

	return rooms
}
