package wheel

import "time"

// Animation defaults
const (
	DefaultAnimationDuration = 5000 * time.Millisecond
	DefaultMinFullTurns      = 5
)

// Reconciliation defaults.
// The poller budget (grace + attempts*delay) normally exceeds the animation duration.
const (
	DefaultGraceDelay  = 1500 * time.Millisecond
	DefaultMaxAttempts = 15
	DefaultInterDelay  = 800 * time.Millisecond

	// HistoryProbePageSize is the page size used to read the newest history record
	HistoryProbePageSize = 1
)

// Registry defaults
const (
	DefaultRegistrySize = 10000
	DefaultRegistryTTL  = 30 * time.Minute
)

// Outcome messages
const (
	MsgNoPrize          = "No prize this time. Better luck on the next spin!"
	MsgPrizeWonFormat   = "Congratulations! You won %s!"
	MsgFallback         = "Payment succeeded! Your prize is being processed, check your spin history in a moment."
	MsgPaymentFailed    = "Payment failed. You were not charged."
	MsgInsufficientFund = "Not enough balance to spin the wheel. Top up and try again."
	MsgDailyLimit       = "You've used all your spins for today. Come back tomorrow!"
	MsgInvalidState     = "The wheel is not available right now."
	MsgSpinFailed       = "Something went wrong while spinning. Please try again."
)

// Log messages
const (
	LogMsgSpinRequested         = "Spin requested"
	LogMsgSpinRejected          = "Spin rejected"
	LogMsgExternalPaymentBegun  = "External payment initiated"
	LogMsgExternalPaymentStatus = "External payment status received"
	LogMsgAnimationStarted      = "Wheel animation started"
	LogMsgSpinResolved          = "Spin resolved"
	LogMsgSpinFallback          = "Reconciliation not finished at animation end, using fallback outcome"
	LogMsgSessionCancelled      = "Spin session cancelled"
	LogMsgSessionSuperseded     = "Spin session superseded by a new spin"
	LogMsgStateTransition       = "Spin state transition"
	LogMsgReconcileStarted      = "Reconciliation poller started"
	LogMsgReconcileAttemptError = "History fetch failed, retrying"
	LogMsgReconcileFound        = "Reconciliation found new history record"
	LogMsgReconcileExhausted    = "Reconciliation attempts exhausted"
	LogMsgReconcileCancelled    = "Reconciliation cancelled"
	LogMsgReconcileLate         = "Discarding late reconciliation result"
	LogMsgReconcilePanic        = "Recovered from panic in history feed"
	LogMsgPublishFailed         = "Failed to publish spin event"
	LogMsgOrchestratorEvicted   = "Evicting idle wheel orchestrator"
)
