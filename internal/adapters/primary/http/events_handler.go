package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kellan/jobwire/internal/core/domain"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
	"github.com/kellan/jobwire/internal/core/ports"
)

// EventsHandler receives domain events from the CRUD API over HTTP and
// hands them to the realtime publisher. All endpoints are fire-and-forget:
// a 202 means the event was accepted for delivery, not delivered.
type EventsHandler struct {
	publisher ports.EventPublisher
	errors    *ErrorHandler
	logger    *slog.Logger
}

// NewEventsHandler creates a new events ingress handler
func NewEventsHandler(publisher ports.EventPublisher, errorHandler *ErrorHandler, logger *slog.Logger) *EventsHandler {
	return &EventsHandler{
		publisher: publisher,
		errors:    errorHandler,
		logger:    logger,
	}
}

// RegisterRoutes registers the internal event routes
func (h *EventsHandler) RegisterRoutes(r chi.Router) {
	r.Post("/application-created", h.ApplicationCreated)
	r.Post("/application-status-changed", h.ApplicationStatusChanged)
	r.Post("/rating-created", h.RatingCreated)
	r.Post("/rating-updated", h.RatingUpdated)
	r.Post("/job-published", h.JobPublished)
	r.Post("/job-status-changed", h.JobStatusChanged)
	r.Post("/notifications", h.Notification)
}

// statusChangeRequest is the body for application status transitions.
type statusChangeRequest struct {
	Application domain.Application       `json:"application"`
	OldStatus   domain.ApplicationStatus `json:"oldStatus"`
}

// jobStatusChangeRequest is the body for job status transitions.
type jobStatusChangeRequest struct {
	Job       domain.Job       `json:"job"`
	OldStatus domain.JobStatus `json:"oldStatus"`
}

// notificationRequest is the body for direct user notifications.
type notificationRequest struct {
	UserID  uuid.UUID `json:"userId"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
}

// ApplicationCreated handles POST /internal/v1/events/application-created
func (h *EventsHandler) ApplicationCreated(w http.ResponseWriter, r *http.Request) {
	var app domain.Application
	if err := decodeBody(r, &app); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if app.ID == uuid.Nil || app.JobID == uuid.Nil || app.CandidateID == uuid.Nil {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "id, jobId and candidateId are required"))
		return
	}

	h.publisher.PublishApplicationCreated(app)
	WriteAccepted(w)
}

// ApplicationStatusChanged handles POST /internal/v1/events/application-status-changed
func (h *EventsHandler) ApplicationStatusChanged(w http.ResponseWriter, r *http.Request) {
	var req statusChangeRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if req.Application.ID == uuid.Nil || req.Application.CandidateID == uuid.Nil {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "application.id and application.candidateId are required"))
		return
	}
	if req.OldStatus == "" {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "oldStatus is required"))
		return
	}

	h.publisher.PublishApplicationStatusChanged(req.Application, req.OldStatus)
	WriteAccepted(w)
}

// RatingCreated handles POST /internal/v1/events/rating-created
func (h *EventsHandler) RatingCreated(w http.ResponseWriter, r *http.Request) {
	rating, err := h.decodeRating(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.publisher.PublishRatingCreated(rating)
	WriteAccepted(w)
}

// RatingUpdated handles POST /internal/v1/events/rating-updated
func (h *EventsHandler) RatingUpdated(w http.ResponseWriter, r *http.Request) {
	rating, err := h.decodeRating(r)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	h.publisher.PublishRatingUpdated(rating)
	WriteAccepted(w)
}

// decodeRating decodes and validates a rating body. Ratings must carry the
// application they belong to so the event can be routed to its candidate.
func (h *EventsHandler) decodeRating(r *http.Request) (domain.Rating, error) {
	var rating domain.Rating
	if err := decodeBody(r, &rating); err != nil {
		return domain.Rating{}, err
	}
	if rating.ID == uuid.Nil {
		return domain.Rating{}, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "id is required")
	}
	if rating.Application.CandidateID == uuid.Nil {
		return domain.Rating{}, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "application.candidateId is required")
	}
	return rating, nil
}

// JobPublished handles POST /internal/v1/events/job-published
func (h *EventsHandler) JobPublished(w http.ResponseWriter, r *http.Request) {
	var job domain.Job
	if err := decodeBody(r, &job); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if job.ID == uuid.Nil {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "id is required"))
		return
	}

	h.publisher.PublishJobPublished(job)
	WriteAccepted(w)
}

// JobStatusChanged handles POST /internal/v1/events/job-status-changed
func (h *EventsHandler) JobStatusChanged(w http.ResponseWriter, r *http.Request) {
	var req jobStatusChangeRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if req.Job.ID == uuid.Nil || req.Job.EmployerID == uuid.Nil {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "job.id and job.employerId are required"))
		return
	}
	if req.OldStatus == "" {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "oldStatus is required"))
		return
	}

	h.publisher.PublishJobStatusChanged(req.Job, req.OldStatus)
	WriteAccepted(w)
}

// Notification handles POST /internal/v1/events/notifications
func (h *EventsHandler) Notification(w http.ResponseWriter, r *http.Request) {
	var req notificationRequest
	if err := decodeBody(r, &req); err != nil {
		h.errors.Handle(w, r, err)
		return
	}
	if req.UserID == uuid.Nil {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "userId is required"))
		return
	}
	if req.Message == "" {
		h.errors.Handle(w, r, apperrors.NewBadRequestError(apperrors.ErrBadRequest, "message is required"))
		return
	}

	h.publisher.PublishNotification(req.UserID, domain.Notification{
		Subject: req.Subject,
		Message: req.Message,
	})
	WriteAccepted(w)
}

// decodeBody decodes a JSON request body, rejecting oversized payloads.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", apperrors.ErrBadRequest, err)
	}
	return nil
}
