package websocket

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kellan/jobwire/internal/core/domain"
	"github.com/kellan/jobwire/internal/core/ports"
)

// DefaultQueueSize is the dispatch queue depth. Publishing into a full
// queue drops the event; this is an at-most-once channel.
const DefaultQueueSize = 256

// Dispatcher is the publish facade. Producers call the kind-specific
// Publish methods; internally everything funnels through one queue
// drained by a single goroutine, so deliveries to any given room happen
// in publish order.
type Dispatcher struct {
	registry *Registry
	router   Router
	queue    chan domain.DomainEvent
	logger   *slog.Logger
}

// Ensure Dispatcher implements the EventPublisher port.
var _ ports.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher over the registry. queueSize <= 0
// falls back to DefaultQueueSize.
func NewDispatcher(registry *Registry, queueSize int, logger *slog.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		registry: registry,
		queue:    make(chan domain.DomainEvent, queueSize),
		logger:   logger.With("component", "ws_dispatcher"),
	}
}

// Run drains the dispatch queue until the context is cancelled. It MUST
// be run as a goroutine before any Publish call is expected to deliver.
func (d *Dispatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.queue:
			d.dispatch(event)
		}
	}
}

func (d *Dispatcher) dispatch(event domain.DomainEvent) {
	deliveries, err := d.router.Route(event)
	if err != nil {
		d.logger.Error("failed to route event", "error", err)
		return
	}

	for _, delivery := range deliveries {
		delivered := d.registry.Deliver(delivery.Room, delivery.Payload)
		d.logger.Debug("event delivered",
			"room", delivery.Room,
			"delivered", delivered,
		)
	}
}

// publish enqueues without blocking the producer. A full queue drops the
// event with a warning.
func (d *Dispatcher) publish(event domain.DomainEvent) {
	select {
	case d.queue <- event:
	default:
		d.logger.Warn("dispatch queue full, dropping event",
			"event", event,
		)
	}
}

func (d *Dispatcher) PublishApplicationCreated(app domain.Application) {
	d.publish(domain.ApplicationCreated{
		Application: app,
		Timestamp:   time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishApplicationStatusChanged(app domain.Application, oldStatus domain.ApplicationStatus) {
	d.publish(domain.ApplicationStatusChanged{
		Application: app,
		OldStatus:   oldStatus,
		Timestamp:   time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishRatingCreated(rating domain.Rating) {
	d.publish(domain.RatingCreated{
		Rating:    rating,
		Timestamp: time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishRatingUpdated(rating domain.Rating) {
	d.publish(domain.RatingUpdated{
		Rating:    rating,
		Timestamp: time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishJobPublished(job domain.Job) {
	d.publish(domain.JobPublished{
		Job:       job,
		Timestamp: time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishJobStatusChanged(job domain.Job, oldStatus domain.JobStatus) {
	d.publish(domain.JobStatusChanged{
		Job:       job,
		OldStatus: oldStatus,
		Timestamp: time.Now().UTC(),
	})
}

func (d *Dispatcher) PublishNotification(userID uuid.UUID, notification domain.Notification) {
	d.publish(domain.GenericNotification{
		UserID:       userID,
		Notification: notification,
		Timestamp:    time.Now().UTC(),
	})
}
