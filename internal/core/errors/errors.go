package errors

import (
	"errors"
)

// Domain errors - these represent business rule violations
var (
	// Authentication failures surfaced as handshake rejection
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrWrongTokenType = errors.New("token is not an access token")
	ErrUnknownUser    = errors.New("user not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("action forbidden")

	// Registry errors
	ErrUnknownConnection = errors.New("connection is not registered")
	ErrCapacityExceeded  = errors.New("connection capacity exceeded")
	ErrRoomLimitExceeded = errors.New("ad-hoc room limit exceeded for connection")

	// Generic
	ErrNotFound    = errors.New("resource not found")
	ErrInternal    = errors.New("internal server error")
	ErrBadRequest  = errors.New("bad request")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// AppError wraps errors with additional context for HTTP responses
type AppError struct {
	Err        error  // The underlying error
	Message    string // User-friendly message
	Code       string // Machine-readable error code
	StatusCode int    // HTTP status code
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors for common cases
func NewBadRequestError(err error, message string) *AppError {
	return &AppError{
		Err:        err,
		Message:    message,
		Code:       "BAD_REQUEST",
		StatusCode: 400,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Err:        ErrUnauthorized,
		Message:    message,
		Code:       "UNAUTHORIZED",
		StatusCode: 401,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Err:        ErrForbidden,
		Message:    message,
		Code:       "FORBIDDEN",
		StatusCode: 403,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Err:        err,
		Message:    "An unexpected error occurred",
		Code:       "INTERNAL_ERROR",
		StatusCode: 500,
	}
}
