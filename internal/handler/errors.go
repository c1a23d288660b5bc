package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingUser           = "Missing user identity"
	ErrMsgInvalidSessionID      = "Invalid session id"
	ErrMsgInvalidPagination     = "Invalid pagination parameters"
	ErrMsgNoOutcome             = "No outcome to show"
	ErrMsgNoSession             = "No active spin"
)

// User-facing error messages for service errors
const (
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgDailyLimitError       = "You have used all of today's spins. Come back tomorrow!"
	ErrMsgInsufficientBalance   = "Not enough balance to spin"
	ErrMsgWheelUnavailableError = "The wheel is not available right now"
	ErrMsgSpinInFlightError     = "A spin is already in progress"
	ErrMsgInvalidPaymentError   = "Unsupported payment mode"
	ErrMsgInvalidStateError     = "That action is not possible right now"
	ErrMsgSessionMismatchError  = "That spin is no longer active"
	ErrMsgUnauthorizedError     = "Authentication failed. Please sign in again."
	ErrMsgUnavailableError      = "Server is temporarily unavailable. Please try again later."
	ErrMsgShuttingDownError     = "Server is shutting down. Please try again shortly."
)

// Success messages for API responses
const (
	MsgDismissed        = "Outcome dismissed"
	MsgSessionCancelled = "Spin cancelled"
)
