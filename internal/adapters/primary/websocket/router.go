package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/kellan/jobwire/internal/core/domain"
)

// Delivery pairs a target room with the serialized envelope destined
// for it.
type Delivery struct {
	Room    string
	Payload []byte
}

// Router encapsulates the room-addressing policy: which rooms an event
// reaches and under which wire-level kind. Routing is pure; each distinct
// envelope is serialized exactly once per event, even when several rooms
// receive it.
type Router struct{}

// Route computes the deliveries for a domain event.
func (Router) Route(event domain.DomainEvent) ([]Delivery, error) {
	switch ev := event.(type) {
	case domain.ApplicationCreated:
		// The employer watching the job sees "created"; the submitting
		// candidate sees "submitted". Same record, two kinds.
		created, err := seal(domain.EventApplicationCreated, ev.Application, ev)
		if err != nil {
			return nil, err
		}
		submitted, err := seal(domain.EventApplicationSubmitted, ev.Application, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.JobRoom(ev.Application.JobID), Payload: created},
			{Room: domain.CandidateRoom(ev.Application.CandidateID), Payload: submitted},
		}, nil

	case domain.ApplicationStatusChanged:
		data := domain.StatusChangePayload{
			Application: ev.Application,
			OldStatus:   ev.OldStatus,
			NewStatus:   ev.Application.Status,
		}
		changed, err := seal(domain.EventApplicationStatusChanged, data, ev)
		if err != nil {
			return nil, err
		}
		updated, err := seal(domain.EventApplicationStatusUpdated, data, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.CandidateRoom(ev.Application.CandidateID), Payload: changed},
			{Room: domain.JobRoom(ev.Application.JobID), Payload: updated},
		}, nil

	case domain.RatingCreated:
		payload, err := seal(domain.EventRatingCreated, ev.Rating, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.CandidateRoom(ev.Rating.Application.CandidateID), Payload: payload},
		}, nil

	case domain.RatingUpdated:
		payload, err := seal(domain.EventRatingUpdated, ev.Rating, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.CandidateRoom(ev.Rating.Application.CandidateID), Payload: payload},
		}, nil

	case domain.JobPublished:
		payload, err := seal(domain.EventJobPublished, ev.Job, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.CandidateBroadcastRoom, Payload: payload},
		}, nil

	case domain.JobStatusChanged:
		data := domain.JobStatusChangePayload{
			Job:       ev.Job,
			OldStatus: ev.OldStatus,
			NewStatus: ev.Job.Status,
		}
		payload, err := seal(domain.EventJobStatusChanged, data, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.EmployerRoom(ev.Job.EmployerID), Payload: payload},
		}, nil

	case domain.GenericNotification:
		payload, err := seal(domain.EventNotification, ev.Notification, ev)
		if err != nil {
			return nil, err
		}
		return []Delivery{
			{Room: domain.UserRoom(ev.UserID), Payload: payload},
		}, nil

	default:
		return nil, fmt.Errorf("no route for event type %T", event)
	}
}

// seal serializes one envelope for the wire.
func seal(kind domain.EventKind, data any, ev domain.DomainEvent) ([]byte, error) {
	return json.Marshal(domain.Envelope{
		Type:      kind,
		Data:      data,
		Timestamp: ev.OccurredAt(),
	})
}
