package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Request-rejected errors
	ErrMsgDailyLimitReached    = "daily spin limit reached"
	ErrMsgInsufficientBalance  = "insufficient balance"
	ErrMsgInvalidState         = "wheel is not available for spinning"
	ErrMsgSpinInFlight         = "a spin is already in progress"
	ErrMsgInvalidPaymentMode   = "invalid payment mode"
	ErrMsgNoActiveSession      = "no active spin session"
	ErrMsgInvalidTransition    = "invalid spin state transition"
	ErrMsgSessionMismatch      = "spin session does not match"
	ErrMsgOrchestratorShutdown = "wheel orchestrator is shut down"

	// External payment errors
	ErrMsgPaymentFailed = "external payment failed"

	// Backend/transport errors
	ErrMsgBackendUnavailable = "portal backend unavailable"
	ErrMsgBackendRejected    = "portal backend rejected the request"

	// Database errors
	ErrMsgDatabaseError = "database error"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
	ErrMsgUnauthorized = "missing user identity"
)

// Backend error codes for typed spin failures
const (
	ErrCodeInsufficientBalance = "insufficient_balance"
	ErrCodeDailyLimitReached   = "daily_limit_reached"
	ErrCodeInvalidState        = "invalid_state"
	ErrCodeNetwork             = "network_error"
	ErrCodePaymentFailed       = "payment_failed"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrDailyLimitReached    = errors.New(ErrMsgDailyLimitReached)
	ErrInsufficientBalance  = errors.New(ErrMsgInsufficientBalance)
	ErrInvalidState         = errors.New(ErrMsgInvalidState)
	ErrSpinInFlight         = errors.New(ErrMsgSpinInFlight)
	ErrInvalidPaymentMode   = errors.New(ErrMsgInvalidPaymentMode)
	ErrNoActiveSession      = errors.New(ErrMsgNoActiveSession)
	ErrInvalidTransition    = errors.New(ErrMsgInvalidTransition)
	ErrSessionMismatch      = errors.New(ErrMsgSessionMismatch)
	ErrOrchestratorShutdown = errors.New(ErrMsgOrchestratorShutdown)

	ErrPaymentFailed = errors.New(ErrMsgPaymentFailed)

	ErrBackendUnavailable = errors.New(ErrMsgBackendUnavailable)
	ErrBackendRejected    = errors.New(ErrMsgBackendRejected)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
	ErrUnauthorized = errors.New(ErrMsgUnauthorized)
)

// ErrorCodeFor maps a request-rejected error to the backend error code it came from
func ErrorCodeFor(err error) string {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		return ErrCodeInsufficientBalance
	case errors.Is(err, ErrDailyLimitReached):
		return ErrCodeDailyLimitReached
	case errors.Is(err, ErrInvalidState):
		return ErrCodeInvalidState
	case errors.Is(err, ErrPaymentFailed):
		return ErrCodePaymentFailed
	default:
		return ErrCodeNetwork
	}
}

// ErrorForCode maps a backend error code to its request-rejected error.
// Unknown codes are reported as ErrBackendRejected.
func ErrorForCode(code string) error {
	switch code {
	case ErrCodeInsufficientBalance:
		return ErrInsufficientBalance
	case ErrCodeDailyLimitReached:
		return ErrDailyLimitReached
	case ErrCodeInvalidState:
		return ErrInvalidState
	case ErrCodePaymentFailed:
		return ErrPaymentFailed
	case ErrCodeNetwork:
		return ErrBackendUnavailable
	default:
		return ErrBackendRejected
	}
}
