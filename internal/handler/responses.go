package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError maps domain errors to HTTP status codes and user-facing messages
func mapServiceError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrDailyLimitReached):
		return http.StatusTooManyRequests, ErrMsgDailyLimitError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusPaymentRequired, ErrMsgInsufficientBalance
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, ErrMsgWheelUnavailableError
	case errors.Is(err, domain.ErrSpinInFlight):
		return http.StatusConflict, ErrMsgSpinInFlightError
	case errors.Is(err, domain.ErrInvalidPaymentMode):
		return http.StatusBadRequest, ErrMsgInvalidPaymentError
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, ErrMsgInvalidStateError
	case errors.Is(err, domain.ErrSessionMismatch):
		return http.StatusConflict, ErrMsgSessionMismatchError
	case errors.Is(err, domain.ErrNoActiveSession):
		return http.StatusNotFound, ErrMsgNoSession
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestSummary
	case errors.Is(err, domain.ErrOrchestratorShutdown):
		return http.StatusServiceUnavailable, ErrMsgShuttingDownError
	case errors.Is(err, domain.ErrPaymentFailed):
		return http.StatusPaymentRequired, domain.ErrMsgPaymentFailed
	case errors.Is(err, domain.ErrBackendUnavailable), errors.Is(err, domain.ErrDatabaseError):
		return http.StatusBadGateway, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrBackendRejected):
		return http.StatusBadGateway, ErrMsgGenericServerError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err and writes its mapped response
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err, "status", status)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", status)
	}
	respondError(w, status, msg)
}
