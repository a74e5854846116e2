package http

import (
	"encoding/json"
	"net/http"
)

// SuccessResponse wraps a successful response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// The header has already been sent; nothing useful to do here.
		return
	}
}

// WriteSuccess writes a success response
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

// WriteAccepted acknowledges a fire-and-forget request. The body says the
// event was queued, not that it was delivered; delivery is best effort.
func WriteAccepted(w http.ResponseWriter) {
	WriteJSON(w, http.StatusAccepted, SuccessResponse{
		Data: map[string]bool{"queued": true},
	})
}
