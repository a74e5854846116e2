package domain

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus mirrors the platform's application lifecycle.
type ApplicationStatus string

const (
	AppStatusPending            ApplicationStatus = "PENDING"
	AppStatusReview             ApplicationStatus = "REVIEW"
	AppStatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	AppStatusRejected           ApplicationStatus = "REJECTED"
	AppStatusHired              ApplicationStatus = "HIRED"
)

// JobStatus mirrors the platform's job lifecycle.
type JobStatus string

const (
	JobStatusDraft     JobStatus = "DRAFT"
	JobStatusPublished JobStatus = "PUBLISHED"
	JobStatusClosed    JobStatus = "CLOSED"
)

// Application is the job-application record as written by the platform's
// CRUD API. The gateway never mutates it; it only forwards it to
// interested rooms. JSON tags match the platform's wire shape.
type Application struct {
	ID          uuid.UUID         `json:"id"`
	JobID       uuid.UUID         `json:"jobId"`
	CandidateID uuid.UUID         `json:"candidateId"`
	Status      ApplicationStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// Rating is an interviewer rating attached to an application. The parent
// application is embedded because routing derives the candidate from it.
type Rating struct {
	ID            uuid.UUID   `json:"id"`
	ApplicationID uuid.UUID   `json:"applicationId"`
	Application   Application `json:"application"`
	Score         int         `json:"score"`
	Feedback      string      `json:"feedback,omitempty"`
	Interviewer   string      `json:"interviewer,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// Job is a job posting owned by an employer.
type Job struct {
	ID          uuid.UUID `json:"id"`
	EmployerID  uuid.UUID `json:"employerId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	Status      JobStatus `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Notification is a free-form message targeted at a single user.
type Notification struct {
	Subject string `json:"subject"`
	Message string `json:"message"`
}
