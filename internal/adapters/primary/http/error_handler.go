package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	mw "github.com/kellan/jobwire/internal/adapters/primary/http/middleware"
	apperrors "github.com/kellan/jobwire/internal/core/errors"
)

// GetRequestID retrieves the request ID from context
func GetRequestID(ctx context.Context) string {
	return mw.GetRequestID(ctx)
}

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle processes an error and writes the appropriate HTTP response
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	requestID := GetRequestID(r.Context())

	// Check for AppError first (our custom error type)
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		h.logError(r, appErr.StatusCode, appErr.Err, requestID)
		h.writeErrorResponse(w, appErr.StatusCode, ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		})
		return
	}

	// Map known domain errors to HTTP responses
	statusCode, response := h.mapDomainError(err)
	h.logError(r, statusCode, err, requestID)
	h.writeErrorResponse(w, statusCode, response)
}

// mapDomainError converts domain errors to HTTP status codes and responses
func (h *ErrorHandler) mapDomainError(err error) (int, ErrorResponse) {
	switch {
	// Authentication failures: the caller's credential is no good.
	case errors.Is(err, apperrors.ErrInvalidToken):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Invalid or expired token",
			Code:  "INVALID_TOKEN",
		}
	case errors.Is(err, apperrors.ErrWrongTokenType):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Token is not an access token",
			Code:  "WRONG_TOKEN_TYPE",
		}
	case errors.Is(err, apperrors.ErrUnknownUser):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "User not found",
			Code:  "UNKNOWN_USER",
		}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorResponse{
			Error: "Authentication required",
			Code:  "UNAUTHORIZED",
		}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, ErrorResponse{
			Error: "You do not have permission to perform this action",
			Code:  "FORBIDDEN",
		}

	// Capacity
	case errors.Is(err, apperrors.ErrCapacityExceeded):
		return http.StatusServiceUnavailable, ErrorResponse{
			Error: "Connection capacity exceeded. Please try again later.",
			Code:  "CAPACITY_EXCEEDED",
		}

	// Validation
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "BAD_REQUEST",
		}

	// Rate limiting
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{
			Error: "Too many requests. Please try again later.",
			Code:  "RATE_LIMITED",
		}

	// Default to internal server error
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "An unexpected error occurred",
			Code:  "INTERNAL_ERROR",
		}
	}
}

// logError logs the error with appropriate context
func (h *ErrorHandler) logError(r *http.Request, statusCode int, err error, requestID string) {
	logAttrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", statusCode,
		"error", err.Error(),
	}

	// Log at different levels based on status code
	switch {
	case statusCode >= 500:
		h.logger.Error("server error", logAttrs...)
	case statusCode >= 400:
		h.logger.Warn("client error", logAttrs...)
	default:
		h.logger.Info("request error", logAttrs...)
	}
}

// writeErrorResponse writes a JSON error response
func (h *ErrorHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, response ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}
