package portal

import "time"

// Backend endpoints
const (
	PathWheelConfig  = "/api/wheel/config"
	PathWheelSpin    = "/api/wheel/spin"
	PathWheelInvoice = "/api/wheel/invoice"
	PathWheelHistory = "/api/wheel/history"
)

// Operation labels used for metrics and logs
const (
	OpGetWheelConfig = "get_wheel_config"
	OpSpin           = "spin"
	OpCreateInvoice  = "create_invoice"
	OpGetHistory     = "get_history"
)

// Retry defaults for idempotent requests
const (
	DefaultTimeout    = 10 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = 200 * time.Millisecond
)

// Query parameters
const (
	QueryPage    = "page"
	QueryPerPage = "per_page"
)

// Log messages
const (
	LogMsgRetrying       = "Retrying portal request"
	LogMsgRequestFailed  = "Portal request failed"
	LogMsgServerError    = "Portal server error, will retry"
	LogMsgBackendRejects = "Portal rejected request"
)
