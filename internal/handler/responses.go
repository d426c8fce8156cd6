package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/fmhgames/reward-service/internal/domain"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages. Internal detail never leaks to callers.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgInvalidRequest        = "Invalid request. Please check your inputs."
	ErrMsgInvalidRequestSummary = "Request validation failed"
	ErrMsgTooManyRequests       = "Too many requests. Please try again later."

	ErrMsgInvalidTimestamp   = "Invalid timestamp"
	ErrMsgReplayedNonce      = "Nonce has already been used"
	ErrMsgInvalidSignature   = "Signature verification failed"
	ErrMsgUnknownAdminToken  = "Unknown admin token"
	ErrMsgInsufficientScope  = "Insufficient permission for this action"
	ErrMsgUnsupportedAction  = "Unsupported action"
	ErrMsgBadActionParams    = "Invalid action parameters"
	ErrMsgActionNotFound     = "Action not found"
	ErrMsgActionNotRunnable  = "Action cannot be executed"
)

// mapServiceErrorToUserMessage maps domain errors to HTTP status codes
// and user-facing messages
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrExpiredTimestamp):
		return http.StatusBadRequest, ErrMsgInvalidTimestamp
	case errors.Is(err, domain.ErrReplayedNonce):
		return http.StatusBadRequest, ErrMsgReplayedNonce
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusUnauthorized, ErrMsgInvalidSignature
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrMsgTooManyRequests
	case errors.Is(err, domain.ErrUnknownAdminToken):
		return http.StatusUnauthorized, ErrMsgUnknownAdminToken
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusBadRequest, ErrMsgInsufficientScope
	case errors.Is(err, domain.ErrUnsupportedAction):
		return http.StatusBadRequest, ErrMsgUnsupportedAction
	case errors.Is(err, domain.ErrInvalidActionParams):
		return http.StatusBadRequest, ErrMsgBadActionParams
	case errors.Is(err, domain.ErrActionNotFound):
		return http.StatusNotFound, ErrMsgActionNotFound
	case errors.Is(err, domain.ErrActionNotExecutable):
		return http.StatusConflict, ErrMsgActionNotRunnable
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequest
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs the real error with session context and
// sends the mapped user-facing response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	log := loggerFromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", status)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, message)
}
