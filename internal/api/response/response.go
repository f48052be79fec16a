package response

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Error is the body of a structured API error.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorResponse struct {
	Error     Error  `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

// JSON writes v as a JSON response with the given status code. Success
// bodies are written as-is: the validation and webhook wire shapes are part
// of the contract with the calling SDK and are not wrapped.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Err writes a structured error JSON response.
func Err(w http.ResponseWriter, status int, code, message, requestID string) {
	JSON(w, status, errorResponse{
		Error:     Error{Code: code, Message: message},
		RequestID: requestID,
	})
}

// ErrWithDetails writes a structured error JSON response with additional
// details, typically field-level validation errors.
func ErrWithDetails(w http.ResponseWriter, status int, code, message string, details any, requestID string) {
	JSON(w, status, errorResponse{
		Error:     Error{Code: code, Message: message, Details: details},
		RequestID: requestID,
	})
}
