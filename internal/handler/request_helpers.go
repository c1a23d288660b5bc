package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/osse101/WheelPortal_Go/internal/logger"
	"github.com/osse101/WheelPortal_Go/internal/portal"
)

// Identity headers set by the Mini-App auth proxy
const (
	HeaderUserID        = "X-User-ID"
	HeaderAuthorization = "Authorization"
)

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest decodes a JSON request body and validates it.
// If it returns an error the response has already been written and the handler should return.
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, actionName string) error {
	log := logger.FromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		log.Warn(fmt.Sprintf("Failed to decode %s request", actionName), "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return err
	}

	return nil
}

// UserIDFromRequest returns the caller identity set by the auth proxy
func UserIDFromRequest(r *http.Request) string {
	return r.Header.Get(HeaderUserID)
}

// requireUser returns the caller and a context carrying their bearer token.
// If ok is false the response has already been written.
func requireUser(w http.ResponseWriter, r *http.Request) (string, context.Context, bool) {
	userID := UserIDFromRequest(r)
	if userID == "" {
		respondError(w, http.StatusUnauthorized, ErrMsgMissingUser)
		return "", nil, false
	}
	ctx := r.Context()
	if token := r.Header.Get(HeaderAuthorization); token != "" {
		ctx = portal.WithAuthToken(ctx, token)
	}
	return userID, ctx, true
}

// GetOptionalIntQueryParam parses an optional integer query parameter.
// ok is false when the value is present but not a positive integer.
func GetOptionalIntQueryParam(r *http.Request, paramName string, defaultValue int) (int, bool) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return defaultValue, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, false
	}
	return value, true
}
