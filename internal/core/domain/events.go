package domain

import (
	"time"

	"github.com/google/uuid"
)

// EventKind is the wire-level event type string delivered to clients.
type EventKind string

const (
	EventApplicationCreated       EventKind = "application:created"
	EventApplicationSubmitted     EventKind = "application:submitted"
	EventApplicationStatusChanged EventKind = "application:statusChanged"
	EventApplicationStatusUpdated EventKind = "application:statusUpdated"
	EventRatingCreated            EventKind = "rating:created"
	EventRatingUpdated            EventKind = "rating:updated"
	EventJobPublished             EventKind = "job:published"
	EventJobStatusChanged         EventKind = "job:statusChanged"
	EventNotification             EventKind = "notification"
)

// Envelope is the JSON payload delivered over the wire.
type Envelope struct {
	Type      EventKind `json:"type"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// DomainEvent is an immutable, timestamped record of something that
// happened elsewhere in the platform, destined for room delivery. It is a
// closed tagged union: the router dispatches on the concrete type.
type DomainEvent interface {
	OccurredAt() time.Time
	domainEvent()
}

// ApplicationCreated is raised after the platform persists a new
// application.
type ApplicationCreated struct {
	Application Application
	Timestamp   time.Time
}

// ApplicationStatusChanged is raised after an application moves to a new
// status. Application carries the updated record; OldStatus the prior one.
type ApplicationStatusChanged struct {
	Application Application
	OldStatus   ApplicationStatus
	Timestamp   time.Time
}

// RatingCreated is raised after an interviewer rates an application.
type RatingCreated struct {
	Rating    Rating
	Timestamp time.Time
}

// RatingUpdated is raised after an existing rating is revised.
type RatingUpdated struct {
	Rating    Rating
	Timestamp time.Time
}

// JobPublished is raised when a job posting goes live.
type JobPublished struct {
	Job       Job
	Timestamp time.Time
}

// JobStatusChanged is raised when a job posting changes status.
type JobStatusChanged struct {
	Job       Job
	OldStatus JobStatus
	Timestamp time.Time
}

// GenericNotification is a direct message to one user.
type GenericNotification struct {
	UserID       uuid.UUID
	Notification Notification
	Timestamp    time.Time
}

func (e ApplicationCreated) OccurredAt() time.Time       { return e.Timestamp }
func (e ApplicationStatusChanged) OccurredAt() time.Time { return e.Timestamp }
func (e RatingCreated) OccurredAt() time.Time            { return e.Timestamp }
func (e RatingUpdated) OccurredAt() time.Time            { return e.Timestamp }
func (e JobPublished) OccurredAt() time.Time             { return e.Timestamp }
func (e JobStatusChanged) OccurredAt() time.Time         { return e.Timestamp }
func (e GenericNotification) OccurredAt() time.Time      { return e.Timestamp }

func (ApplicationCreated) domainEvent()       {}
func (ApplicationStatusChanged) domainEvent() {}
func (RatingCreated) domainEvent()            {}
func (RatingUpdated) domainEvent()            {}
func (JobPublished) domainEvent()             {}
func (JobStatusChanged) domainEvent()         {}
func (GenericNotification) domainEvent()      {}

// StatusChangePayload is the envelope data for both application status
// event kinds.
type StatusChangePayload struct {
	Application Application       `json:"application"`
	OldStatus   ApplicationStatus `json:"oldStatus"`
	NewStatus   ApplicationStatus `json:"newStatus"`
}

// JobStatusChangePayload is the envelope data for job:statusChanged.
type JobStatusChangePayload struct {
	Job       Job       `json:"job"`
	OldStatus JobStatus `json:"oldStatus"`
	NewStatus JobStatus `json:"newStatus"`
}
