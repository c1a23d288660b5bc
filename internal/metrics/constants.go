package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Spin metric names
const (
	MetricNameSpinStateTransitions = "wheel_spin_state_transitions_total"
	MetricNameSpinsStarted         = "wheel_spins_started_total"
	MetricNameSpinOutcomes         = "wheel_spin_outcomes_total"
	MetricNameSpinsInFlight        = "wheel_spins_in_flight"
)

// Reconciliation metric names
const (
	MetricNameReconcileAttempts    = "wheel_reconcile_attempts_total"
	MetricNameReconcileResults     = "wheel_reconcile_results_total"
	MetricNameReconcileLateResults = "wheel_reconcile_late_results_total"
)

// Backend metric names
const (
	MetricNameBackendRequestsTotal   = "portal_backend_requests_total"
	MetricNameBackendRequestDuration = "portal_backend_request_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Spin metric help text
const (
	HelpTextSpinStateTransitions = "Total number of spin session state transitions"
	HelpTextSpinsStarted         = "Total number of wheel animations started"
	HelpTextSpinOutcomes         = "Total number of spin outcomes presented, by headline"
	HelpTextSpinsInFlight        = "Current number of spins between request and outcome"
)

// Reconciliation metric help text
const (
	HelpTextReconcileAttempts    = "Total number of history fetches made by the reconciliation poller"
	HelpTextReconcileResults     = "Total number of reconciliation runs, by result"
	HelpTextReconcileLateResults = "Total number of reconciliation results discarded because the spin had already resolved"
)

// Backend metric help text
const (
	HelpTextBackendRequestsTotal   = "Total number of portal backend requests"
	HelpTextBackendRequestDuration = "Portal backend request latency in seconds"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelType       = "type"
	LabelFrom       = "from"
	LabelTo         = "to"
	LabelMeaningful = "meaningful"
	LabelHeadline   = "headline"
	LabelResult     = "result"
	LabelOperation  = "operation"
)

// ============================================================================
// Label Values
// ============================================================================

// Reconciliation results
const (
	ReconcileResultFound     = "found"
	ReconcileResultExhausted = "exhausted"
	ReconcileResultCancelled = "cancelled"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for request duration
// in seconds. These buckets range from 1ms to 10s to capture various latency
// patterns: fast (1-10ms), normal (10-100ms), slow (100ms-1s), very slow (1-10s)
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadInvalid = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
