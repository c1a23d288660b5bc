package domain

// Event type constants used for event bus subscriptions, SSE streaming
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "spin.resolved")
const (
	// EventTypeSpinStateChanged is published on every spin session state transition
	EventTypeSpinStateChanged = "spin.state_changed"

	// EventTypeSpinAnimationStarted is published when the wheel starts rotating
	EventTypeSpinAnimationStarted = "spin.animation_started"

	// EventTypeSpinOutcomeReady is published once per spin when the outcome may be revealed
	EventTypeSpinOutcomeReady = "spin.outcome_ready"

	// EventTypeSpinReconciled is published when the poller discovers the outcome of an external payment
	EventTypeSpinReconciled = "spin.reconciled"
)

// SpinStateChangedPayload is the event payload for spin.state_changed events
type SpinStateChangedPayload struct {
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id"`
	From      SpinState `json:"from"`
	To        SpinState `json:"to"`
}

// SpinAnimationStartedPayload is the event payload for spin.animation_started events
type SpinAnimationStartedPayload struct {
	UserID    string        `json:"user_id"`
	SessionID string        `json:"session_id"`
	Animation AnimationPlan `json:"animation"`
}

// SpinOutcomeReadyPayload is the event payload for spin.outcome_ready events.
// It never carries the redeem code; clients fetch the presentation to disclose it.
type SpinOutcomeReadyPayload struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Headline  string `json:"headline"`
	Success   bool   `json:"success"`
	PrizeID   *int64 `json:"prize_id"`
	Label     string `json:"prize_label,omitempty"`
	Message   string `json:"message,omitempty"`
	Fallback  bool   `json:"fallback"`
}

// SpinReconciledPayload is the event payload for spin.reconciled events
type SpinReconciledPayload struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Found     bool   `json:"found"`
	Late      bool   `json:"late"`
}
