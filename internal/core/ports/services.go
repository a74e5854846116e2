package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/kellan/jobwire/internal/core/domain"
)

// TokenVerifier defines the port for validating bearer credentials. It
// checks signature and expiry only; the identity service enforces the
// token class on top of it.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// IdentityDirectory defines the port for resolving a user's role-scoped
// identifiers. Implementations return apperrors.ErrUnknownUser when the
// user does not exist.
type IdentityDirectory interface {
	LookupRoleIDs(ctx context.Context, userID uuid.UUID) (domain.RoleIDs, error)
}

// IdentityVerifier defines the port for turning a raw credential into a
// verified Identity at connection time.
type IdentityVerifier interface {
	Verify(ctx context.Context, credential string) (domain.Identity, error)
}

// EventPublisher is the facade domain collaborators use to publish typed
// events. Publishing is fire-and-forget: it never blocks on network I/O
// and reports nothing back to the caller.
type EventPublisher interface {
	PublishApplicationCreated(app domain.Application)
	PublishApplicationStatusChanged(app domain.Application, oldStatus domain.ApplicationStatus)
	PublishRatingCreated(rating domain.Rating)
	PublishRatingUpdated(rating domain.Rating)
	PublishJobPublished(job domain.Job)
	PublishJobStatusChanged(job domain.Job, oldStatus domain.JobStatus)
	PublishNotification(userID uuid.UUID, notification domain.Notification)
}

// RealtimeStats exposes connection-level counters for the admin API.
type RealtimeStats interface {
	ConnectionCount() int
	RoomCount() int
	ConnectionsByRole() map[domain.Role]int
}
