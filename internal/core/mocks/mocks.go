package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kellan/jobwire/internal/core/domain"
)

// MockTokenVerifier is a mock implementation of ports.TokenVerifier
type MockTokenVerifier struct {
	mock.Mock
}

func NewMockTokenVerifier() *MockTokenVerifier {
	return &MockTokenVerifier{}
}

func (m *MockTokenVerifier) Verify(token string) (*domain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TokenClaims), args.Error(1)
}

// MockIdentityDirectory is a mock implementation of ports.IdentityDirectory
type MockIdentityDirectory struct {
	mock.Mock
}

func NewMockIdentityDirectory() *MockIdentityDirectory {
	return &MockIdentityDirectory{}
}

func (m *MockIdentityDirectory) LookupRoleIDs(ctx context.Context, userID uuid.UUID) (domain.RoleIDs, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.RoleIDs), args.Error(1)
}

// MockIdentityVerifier is a mock implementation of ports.IdentityVerifier
type MockIdentityVerifier struct {
	mock.Mock
}

func NewMockIdentityVerifier() *MockIdentityVerifier {
	return &MockIdentityVerifier{}
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, credential string) (domain.Identity, error) {
	args := m.Called(ctx, credential)
	return args.Get(0).(domain.Identity), args.Error(1)
}

// MockEventPublisher is a mock implementation of ports.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{}
}

func (m *MockEventPublisher) PublishApplicationCreated(app domain.Application) {
	m.Called(app)
}

func (m *MockEventPublisher) PublishApplicationStatusChanged(app domain.Application, oldStatus domain.ApplicationStatus) {
	m.Called(app, oldStatus)
}

func (m *MockEventPublisher) PublishRatingCreated(rating domain.Rating) {
	m.Called(rating)
}

func (m *MockEventPublisher) PublishRatingUpdated(rating domain.Rating) {
	m.Called(rating)
}

func (m *MockEventPublisher) PublishJobPublished(job domain.Job) {
	m.Called(job)
}

func (m *MockEventPublisher) PublishJobStatusChanged(job domain.Job, oldStatus domain.JobStatus) {
	m.Called(job, oldStatus)
}

func (m *MockEventPublisher) PublishNotification(userID uuid.UUID, notification domain.Notification) {
	m.Called(userID, notification)
}
