package postgres

// Table and paging defaults of the history mirror
const (
	TableSpinHistory = "wheel_spin_history"

	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Error Messages - History Operations
const (
	ErrMsgFailedToQueryHistory = "failed to query spin history"
	ErrMsgFailedToScanHistory  = "failed to scan spin history"
	ErrMsgFailedToCountHistory = "failed to count spin history"
	ErrMsgFailedToParseAmount  = "failed to parse payment amount"
)
