package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kellan/jobwire/internal/core/domain"
)

// receiveEnvelope waits for one envelope on the connection's outbound
// buffer, failing the test if nothing arrives in time.
func receiveEnvelope(t *testing.T, conn *Connection) domain.Envelope {
	t.Helper()
	select {
	case payload := <-conn.send:
		var env domain.Envelope
		require.NoError(t, json.Unmarshal(payload, &env))
		return env
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for envelope")
		return domain.Envelope{}
	}
}

func assertNoEnvelope(t *testing.T, conn *Connection) {
	t.Helper()
	select {
	case payload := <-conn.send:
		t.Fatalf("unexpected envelope: %s", payload)
	case <-time.After(100 * time.Millisecond):
	}
}

func startDispatcher(t *testing.T, r *Registry, queueSize int) *Dispatcher {
	t.Helper()
	d := NewDispatcher(r, queueSize, testLogger())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go d.Run(ctx)
	return d
}

func TestDispatcher_ApplicationSubmission(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	// An employer watching a job and the candidate who applies.
	employer, err := r.Register(employerIdentity())
	require.NoError(t, err)
	candidate := candidateIdentity()
	candConn, err := r.Register(candidate)
	require.NoError(t, err)

	jobID := uuid.New()
	require.NoError(t, r.Join(employer.ID, domain.JobRoom(jobID)))

	d.PublishApplicationCreated(domain.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		CandidateID: *candidate.CandidateID,
		Status:      domain.AppStatusPending,
	})

	env := receiveEnvelope(t, employer)
	assert.Equal(t, domain.EventApplicationCreated, env.Type)

	env = receiveEnvelope(t, candConn)
	assert.Equal(t, domain.EventApplicationSubmitted, env.Type)
}

func TestDispatcher_StatusChangeReachesOnlyTheCandidate(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	affected := candidateIdentity()
	affectedConn, err := r.Register(affected)
	require.NoError(t, err)

	bystander, err := r.Register(candidateIdentity())
	require.NoError(t, err)

	d.PublishApplicationStatusChanged(domain.Application{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		CandidateID: *affected.CandidateID,
		Status:      domain.AppStatusHired,
	}, domain.AppStatusInterviewScheduled)

	env := receiveEnvelope(t, affectedConn)
	assert.Equal(t, domain.EventApplicationStatusChanged, env.Type)

	assertNoEnvelope(t, bystander)
}

func TestDispatcher_JobPublishedReachesAllCandidates(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	candA, err := r.Register(candidateIdentity())
	require.NoError(t, err)
	candB, err := r.Register(candidateIdentity())
	require.NoError(t, err)
	employer, err := r.Register(employerIdentity())
	require.NoError(t, err)

	d.PublishJobPublished(domain.Job{
		ID:         uuid.New(),
		EmployerID: uuid.New(),
		Title:      "Site Reliability Engineer",
		Status:     domain.JobStatusPublished,
	})

	for _, conn := range []*Connection{candA, candB} {
		env := receiveEnvelope(t, conn)
		assert.Equal(t, domain.EventJobPublished, env.Type)
	}

	assertNoEnvelope(t, employer)
}

func TestDispatcher_NotificationTargetsOneUser(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	target := candidateIdentity()
	targetConn, err := r.Register(target)
	require.NoError(t, err)

	other, err := r.Register(candidateIdentity())
	require.NoError(t, err)

	d.PublishNotification(target.UserID, domain.Notification{
		Subject: "Offer",
		Message: "You have received an offer",
	})

	env := receiveEnvelope(t, targetConn)
	assert.Equal(t, domain.EventNotification, env.Type)

	assertNoEnvelope(t, other)
}

func TestDispatcher_MultipleSessionsPerUser(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	// The same user connected twice (laptop and phone).
	identity := candidateIdentity()
	first, err := r.Register(identity)
	require.NoError(t, err)
	second, err := r.Register(identity)
	require.NoError(t, err)

	d.PublishNotification(identity.UserID, domain.Notification{Message: "hello"})

	for _, conn := range []*Connection{first, second} {
		env := receiveEnvelope(t, conn)
		assert.Equal(t, domain.EventNotification, env.Type)
	}
}

func TestDispatcher_RatingEventsReachCandidate(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	candidate := candidateIdentity()
	conn, err := r.Register(candidate)
	require.NoError(t, err)

	rating := domain.Rating{
		ID:            uuid.New(),
		ApplicationID: uuid.New(),
		Application: domain.Application{
			ID:          uuid.New(),
			CandidateID: *candidate.CandidateID,
		},
		Score: 5,
	}

	d.PublishRatingCreated(rating)
	env := receiveEnvelope(t, conn)
	assert.Equal(t, domain.EventRatingCreated, env.Type)

	d.PublishRatingUpdated(rating)
	env = receiveEnvelope(t, conn)
	assert.Equal(t, domain.EventRatingUpdated, env.Type)
}

func TestDispatcher_JobStatusChangeReachesEmployer(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := startDispatcher(t, r, 0)

	employer := employerIdentity()
	conn, err := r.Register(employer)
	require.NoError(t, err)

	d.PublishJobStatusChanged(domain.Job{
		ID:         uuid.New(),
		EmployerID: *employer.EmployerID,
		Status:     domain.JobStatusClosed,
	}, domain.JobStatusPublished)

	env := receiveEnvelope(t, conn)
	assert.Equal(t, domain.EventJobStatusChanged, env.Type)
}

func TestDispatcher_PerRoomOrdering(t *testing.T) {
	r := newTestRegistry(RegistryConfig{SendBufferSize: 128})
	d := startDispatcher(t, r, 128)

	target := candidateIdentity()
	conn, err := r.Register(target)
	require.NoError(t, err)

	const n = 20
	for i := 0; i < n; i++ {
		d.PublishNotification(target.UserID, domain.Notification{
			Message: string(rune('a' + i)),
		})
	}

	// Deliveries to one room come out in publish order.
	for i := 0; i < n; i++ {
		env := receiveEnvelope(t, conn)
		data, ok := env.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, string(rune('a'+i)), data["message"])
	}
}

func TestDispatcher_PublishWithoutRunnerDoesNotBlock(t *testing.T) {
	r := newTestRegistry(RegistryConfig{})
	d := NewDispatcher(r, 2, testLogger())

	// No Run goroutine. Publishing past the queue depth must drop, not
	// block the producer.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			d.PublishNotification(uuid.New(), domain.Notification{Message: "x"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full queue")
	}
}
