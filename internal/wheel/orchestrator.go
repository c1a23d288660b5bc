package wheel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/event"
	"github.com/osse101/WheelPortal_Go/internal/logger"
)

// Config holds the orchestrator timing settings
type Config struct {
	AnimationDuration time.Duration
	MinFullTurns      int
	Reconcile         ReconcileConfig
}

// DefaultConfig returns the production orchestrator settings
func DefaultConfig() Config {
	return Config{
		AnimationDuration: DefaultAnimationDuration,
		MinFullTurns:      DefaultMinFullTurns,
		Reconcile:         DefaultReconcileConfig(),
	}
}

// Dependencies are the collaborators of an orchestrator.
// History defaults to Backend and Reconciler to a HistoryPoller over History.
type Dependencies struct {
	Backend    Backend
	History    HistoryFeed
	Reconciler Reconciler
	Bus        event.Bus
}

// Orchestrator drives the spin lifecycle of one user's wheel.
// It holds at most one session; a second spin while one is in flight is rejected.
type Orchestrator struct {
	userID      string
	backend     Backend
	history     HistoryFeed
	reconciler  Reconciler
	bus         event.Bus
	presenter   *OutcomePresenter
	animator    *Animator
	duration    time.Duration
	placeholder func() float64
	now         func() time.Time

	mu      sync.Mutex
	session *Session
	// starting is set while BeginExternalPayment talks to the backend
	// before its session exists. abortStart cancels that work.
	starting       bool
	startCancelled bool
	abortStart     context.CancelFunc
	closed         bool
	wg             sync.WaitGroup
}

// NewOrchestrator creates the orchestrator for userID
func NewOrchestrator(userID string, deps Dependencies, cfg Config) *Orchestrator {
	history := deps.History
	if history == nil {
		history = deps.Backend
	}
	reconciler := deps.Reconciler
	if reconciler == nil {
		reconciler = NewHistoryPoller(history, cfg.Reconcile)
	}

	animator := NewAnimator(cfg.MinFullTurns, cfg.AnimationDuration)
	return &Orchestrator{
		userID:     userID,
		backend:    deps.Backend,
		history:    history,
		reconciler: reconciler,
		bus:        deps.Bus,
		presenter:  NewOutcomePresenter(),
		animator:   animator,
		duration:   animator.Duration(),
		placeholder: func() float64 {
			return float64(rand.IntN(int(domain.DegreesPerTurn)))
		},
		now: time.Now,
	}
}

// UserID returns the owner of the wheel
func (o *Orchestrator) UserID() string {
	return o.userID
}

// Animator returns the rotation state of the wheel
func (o *Orchestrator) Animator() *Animator {
	return o.animator
}

// StartSpin runs an internal-debit spin whose outcome is returned by the spin call itself.
// External payments go through BeginExternalPayment instead.
// A rejected spin still yields a snapshot of the Failed session alongside the error.
func (o *Orchestrator) StartSpin(ctx context.Context, req domain.SpinRequest) (*domain.SessionSnapshot, error) {
	if req.PaymentMode != domain.PaymentModeInternalDebit {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidPaymentMode, req.PaymentMode)
	}

	var events []event.Event
	o.mu.Lock()
	if err := o.checkAvailableLocked(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	s := o.newSessionLocked(ctx, req, &events)
	o.moveLocked(s, domain.SpinStateRequestingSpin, &events)
	o.mu.Unlock()
	o.publish(s.ctx, events)

	log := o.sessionLogger(ctx, s)
	log.Info(LogMsgSpinRequested, "payment_mode", req.PaymentMode)

	outcome, err := o.backend.Spin(s.ctx, req)
	if err == nil && (outcome == nil || !outcome.Success) {
		err = rejectionFromOutcome(outcome)
	}

	events = nil
	o.mu.Lock()
	if o.session != s || s.State != domain.SpinStateRequestingSpin {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: session %s was cancelled", domain.ErrNoActiveSession, s.ID)
	}

	if err != nil {
		failure := failureOutcome(err, outcome)
		s.Outcome = failure
		o.moveLocked(s, domain.SpinStateFailed, &events)
		s.stop()
		events = append(events, o.presentLocked(ctx, s, failure, false))
		snap := s.snapshot()
		o.mu.Unlock()
		o.publish(s.ctx, events)

		log.Warn(LogMsgSpinRejected, "error", err, "error_code", failure.ErrorCode)
		return &snap, err
	}

	s.Outcome = outcome
	plan := o.animator.Spin(outcome.LandingAngle, true)
	s.Animation = &plan
	o.moveLocked(s, domain.SpinStateAnimating, &events)
	events = append(events, event.NewSpinAnimationStartedEvent(o.userID, s.ID.String(), plan))
	o.startTimerLocked(s)
	snap := s.snapshot()
	o.mu.Unlock()
	o.publish(s.ctx, events)

	log.Info(LogMsgAnimationStarted, "from", plan.From, "to", plan.To, "meaningful", plan.Meaningful)
	return &snap, nil
}

// BeginExternalPayment snapshots the newest history ID and creates an invoice
// for the external payment surface. The baseline is always taken first, so a
// record created while the invoice is being paid is never part of it.
func (o *Orchestrator) BeginExternalPayment(ctx context.Context) (*domain.SessionSnapshot, error) {
	o.mu.Lock()
	if err := o.checkAvailableLocked(); err != nil {
		o.mu.Unlock()
		return nil, err
	}
	startCtx, abort := context.WithCancel(ctx)
	defer abort()
	o.starting = true
	o.startCancelled = false
	o.abortStart = abort
	o.mu.Unlock()

	// finishStart ends the starting phase. It reports a Cancel that arrived meanwhile.
	finishStart := func() error {
		o.starting = false
		o.abortStart = nil
		if o.startCancelled {
			o.startCancelled = false
			return fmt.Errorf("%w: cancelled before the invoice was issued", domain.ErrNoActiveSession)
		}
		return nil
	}

	baseline, err := LatestHistoryID(startCtx, o.history)
	if err != nil {
		o.mu.Lock()
		cancelled := finishStart()
		o.mu.Unlock()
		if cancelled != nil {
			return nil, cancelled
		}
		return nil, fmt.Errorf("%w: failed to read history baseline: %v", domain.ErrBackendUnavailable, err)
	}

	invoice, err := o.backend.CreateExternalInvoice(startCtx)
	if err != nil {
		o.mu.Lock()
		cancelled := finishStart()
		o.mu.Unlock()
		if cancelled != nil {
			return nil, cancelled
		}
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	var events []event.Event
	o.mu.Lock()
	if cancelled := finishStart(); cancelled != nil {
		o.mu.Unlock()
		logger.FromContext(ctx).Info(LogMsgSessionCancelled, logger.AttrKeyUserID, o.userID, "phase", "invoice")
		return nil, cancelled
	}
	if o.closed {
		o.mu.Unlock()
		return nil, domain.ErrOrchestratorShutdown
	}
	s := o.newSessionLocked(ctx, domain.SpinRequest{PaymentMode: domain.PaymentModeExternalInvoice}, &events)
	s.BaselineID = baseline
	s.InvoiceURL = invoice.InvoiceURL
	o.moveLocked(s, domain.SpinStateAwaitingExternalPayment, &events)
	snap := s.snapshot()
	o.mu.Unlock()
	o.publish(s.ctx, events)

	o.sessionLogger(ctx, s).Info(LogMsgExternalPaymentBegun, "baseline_id", baseline)
	return &snap, nil
}

// CompletePayment applies the status reported by the external payment surface.
// paid starts the animation on a placeholder angle and launches reconciliation,
// cancelled silently returns to Idle, anything else fails the spin.
func (o *Orchestrator) CompletePayment(ctx context.Context, sessionID uuid.UUID, status domain.PaymentStatus) (*domain.SessionSnapshot, error) {
	var events []event.Event
	o.mu.Lock()
	s, err := o.currentLocked(sessionID)
	if err != nil {
		o.mu.Unlock()
		return nil, err
	}
	if s.State != domain.SpinStateAwaitingExternalPayment {
		o.mu.Unlock()
		return nil, fmt.Errorf("%w: payment status %q in state %s", domain.ErrInvalidTransition, status, s.State)
	}

	log := o.sessionLogger(ctx, s)
	log.Info(LogMsgExternalPaymentStatus, "status", status)

	switch status {
	case domain.PaymentStatusPaid:
		plan := o.animator.Spin(o.placeholder(), false)
		s.Animation = &plan
		o.moveLocked(s, domain.SpinStateAnimating, &events)
		events = append(events, event.NewSpinAnimationStartedEvent(o.userID, s.ID.String(), plan))
		o.moveLocked(s, domain.SpinStateReconciling, &events)
		s.reconciling = true
		o.startTimerLocked(s)
		o.startReconcileLocked(s)

	case domain.PaymentStatusCancelled:
		s.stop()
		o.moveLocked(s, domain.SpinStateIdle, &events)
		o.session = nil

	default:
		failure := failureOutcome(domain.ErrPaymentFailed, nil)
		s.Outcome = failure
		o.moveLocked(s, domain.SpinStateFailed, &events)
		s.stop()
		events = append(events, o.presentLocked(ctx, s, failure, false))
	}

	snap := s.snapshot()
	o.mu.Unlock()
	o.publish(s.ctx, events)
	return &snap, nil
}

// Snapshot returns the current session, if any
func (o *Orchestrator) Snapshot() (domain.SessionSnapshot, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.session == nil {
		return domain.SessionSnapshot{}, false
	}
	return o.session.snapshot(), true
}

// Outcome returns the pending presentation. The redeem code is disclosed by the first call only.
func (o *Orchestrator) Outcome() (Presentation, bool) {
	return o.presenter.Reveal()
}

// Dismiss closes the outcome view of a finished spin and returns the wheel to Idle.
// uuid.Nil dismisses the current session.
func (o *Orchestrator) Dismiss(ctx context.Context, sessionID uuid.UUID) error {
	var events []event.Event
	o.mu.Lock()
	s, err := o.currentLocked(sessionID)
	if err != nil {
		o.mu.Unlock()
		return err
	}
	if s.State != domain.SpinStateResolved && s.State != domain.SpinStateFailed {
		o.mu.Unlock()
		return fmt.Errorf("%w: cannot dismiss a session in state %s", domain.ErrInvalidTransition, s.State)
	}
	o.teardownLocked(s, &events)
	o.mu.Unlock()
	o.publish(s.ctx, events)
	return nil
}

// Cancel tears down the current session in any state. Nothing is presented,
// and an already confirmed payment is not rolled back.
func (o *Orchestrator) Cancel(ctx context.Context) error {
	var events []event.Event
	o.mu.Lock()
	s := o.session
	if s == nil {
		if o.starting && o.abortStart != nil {
			o.startCancelled = true
			o.abortStart()
			o.mu.Unlock()
			return nil
		}
		o.mu.Unlock()
		return domain.ErrNoActiveSession
	}
	o.teardownLocked(s, &events)
	o.mu.Unlock()
	o.publish(s.ctx, events)

	o.sessionLogger(ctx, s).Info(LogMsgSessionCancelled)
	return nil
}

// Close cancels the current session and rejects any new spin. It does not wait.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.closed = true
	if o.abortStart != nil {
		o.abortStart()
	}
	if o.session != nil {
		o.session.stop()
		o.presenter.Clear(o.session.ID)
		o.session = nil
	}
}

// Shutdown closes the orchestrator and waits for its timers and pollers to exit
func (o *Orchestrator) Shutdown(ctx context.Context) error {
	o.Close()

	done := make(chan struct{})
	go func() {
		o.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Busy reports whether a spin is in flight
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.starting || (o.session != nil && !o.session.State.Terminal())
}

func (o *Orchestrator) checkAvailableLocked() error {
	if o.closed {
		return domain.ErrOrchestratorShutdown
	}
	if o.starting || (o.session != nil && !o.session.State.Terminal()) {
		return domain.ErrSpinInFlight
	}
	return nil
}

func (o *Orchestrator) currentLocked(sessionID uuid.UUID) (*Session, error) {
	if o.session == nil {
		return nil, domain.ErrNoActiveSession
	}
	if sessionID != uuid.Nil && o.session.ID != sessionID {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionMismatch, sessionID)
	}
	return o.session, nil
}

// newSessionLocked replaces a finished session with a fresh one.
// The old session's context is cancelled first, stopping any lingering poller.
func (o *Orchestrator) newSessionLocked(ctx context.Context, req domain.SpinRequest, events *[]event.Event) *Session {
	if old := o.session; old != nil {
		old.stop()
		o.presenter.Clear(old.ID)
		if old.State != domain.SpinStateIdle {
			o.moveLocked(old, domain.SpinStateIdle, events)
		}
		o.sessionLogger(ctx, old).Debug(LogMsgSessionSuperseded)
	}

	s := newSession(context.WithoutCancel(ctx), req, o.now())
	o.session = s
	return s
}

func (o *Orchestrator) teardownLocked(s *Session, events *[]event.Event) {
	s.stop()
	s.reconciling = false
	o.presenter.Clear(s.ID)
	if s.State != domain.SpinStateIdle {
		o.moveLocked(s, domain.SpinStateIdle, events)
	}
	if o.session == s {
		o.session = nil
	}
}

// moveLocked transitions s and queues the state change event.
// Every caller checks the current state first, so a rejected transition is a bug.
func (o *Orchestrator) moveLocked(s *Session, next domain.SpinState, events *[]event.Event) {
	from := s.State
	if err := s.transition(next, o.now()); err != nil {
		logger.FromContext(s.ctx).Error(LogMsgStateTransition, logger.AttrKeyUserID, o.userID, logger.AttrKeySessionID, s.ID, "error", err)
		return
	}
	logger.FromContext(s.ctx).Debug(LogMsgStateTransition, logger.AttrKeyUserID, o.userID, logger.AttrKeySessionID, s.ID, "from", from, "to", next)
	*events = append(*events, event.NewSpinStateChangedEvent(o.userID, s.ID.String(), from, next))
}

// presentLocked hands the outcome to the presenter and returns the reveal event
func (o *Orchestrator) presentLocked(ctx context.Context, s *Session, outcome *domain.SpinOutcome, fallback bool) event.Event {
	s.presented = true
	shown := o.presenter.Present(ctx, BuildPresentation(s.ID, outcome, fallback))
	return event.NewSpinOutcomeReadyEvent(domain.SpinOutcomeReadyPayload{
		UserID:    o.userID,
		SessionID: s.ID.String(),
		Headline:  string(shown.Headline),
		Success:   shown.Success,
		PrizeID:   shown.PrizeID,
		Label:     shown.PrizeLabel,
		Message:   shown.Message,
		Fallback:  fallback,
	})
}

// startTimerLocked runs the fixed-duration animation for s
func (o *Orchestrator) startTimerLocked(s *Session) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		timer := time.NewTimer(o.duration)
		defer timer.Stop()

		select {
		case <-timer.C:
			o.finishAnimation(s)
		case <-s.ctx.Done():
		}
	}()
}

// finishAnimation resolves s once the animation has ended, with the fallback
// outcome when reconciliation has not produced one yet
func (o *Orchestrator) finishAnimation(s *Session) {
	var events []event.Event
	o.mu.Lock()
	if o.session != s || s.presented ||
		(s.State != domain.SpinStateAnimating && s.State != domain.SpinStateReconciling) {
		o.mu.Unlock()
		return
	}

	log := o.sessionLogger(s.ctx, s)
	fallback := s.Outcome == nil
	if fallback {
		s.Outcome = FallbackOutcome()
		log.Info(LogMsgSpinFallback, "baseline_id", s.BaselineID)
	}
	o.moveLocked(s, domain.SpinStateResolved, &events)
	events = append(events, o.presentLocked(s.ctx, s, s.Outcome, fallback))
	outcome := *s.Outcome
	o.mu.Unlock()
	o.publish(s.ctx, events)

	log.Info(LogMsgSpinResolved, "success", outcome.Success, "has_prize", outcome.HasPrize(), "fallback", fallback)
}

// startReconcileLocked launches the poller for an externally paid session
func (o *Orchestrator) startReconcileLocked(s *Session) {
	baseline := s.BaselineID
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()

		var outcome *domain.SpinOutcome
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.FromContext(s.ctx).Error(LogMsgReconcilePanic, logger.AttrKeyUserID, o.userID, "panic", r)
					outcome = nil
				}
			}()
			outcome = o.reconciler.Reconcile(s.ctx, baseline)
		}()

		o.reconciled(s, outcome)
	}()
}

// reconciled stores the poller result. A result for a session that already
// resolved or was replaced is discarded.
func (o *Orchestrator) reconciled(s *Session, outcome *domain.SpinOutcome) {
	var events []event.Event
	o.mu.Lock()
	if s.ctx.Err() != nil {
		o.mu.Unlock()
		return
	}
	if o.session != s || s.State != domain.SpinStateReconciling {
		s.reconciling = false
		o.mu.Unlock()
		if outcome != nil {
			o.sessionLogger(s.ctx, s).Info(LogMsgReconcileLate)
		}
		o.publish(s.ctx, []event.Event{event.NewSpinReconciledEvent(o.userID, s.ID.String(), outcome != nil, true)})
		return
	}

	s.reconciling = false
	if outcome != nil {
		s.Outcome = outcome
	}
	o.moveLocked(s, domain.SpinStateAnimating, &events)
	events = append(events, event.NewSpinReconciledEvent(o.userID, s.ID.String(), outcome != nil, false))
	o.mu.Unlock()
	o.publish(s.ctx, events)
}

func (o *Orchestrator) publish(ctx context.Context, events []event.Event) {
	if o.bus == nil {
		return
	}
	for _, evt := range events {
		if err := o.bus.Publish(ctx, evt); err != nil {
			logger.FromContext(ctx).Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
		}
	}
}

func (o *Orchestrator) sessionLogger(ctx context.Context, s *Session) *slog.Logger {
	return logger.FromContext(ctx).With(logger.AttrKeyUserID, o.userID, logger.AttrKeySessionID, s.ID)
}

// rejectionFromOutcome turns an unsuccessful spin outcome into its request-rejected error
func rejectionFromOutcome(outcome *domain.SpinOutcome) error {
	if outcome == nil {
		return fmt.Errorf("%w: empty spin response", domain.ErrBackendUnavailable)
	}
	return domain.ErrorForCode(outcome.ErrorCode)
}

// failureOutcome builds the displayable outcome of a failed spin
func failureOutcome(err error, backendOutcome *domain.SpinOutcome) *domain.SpinOutcome {
	failure := &domain.SpinOutcome{
		Success:   false,
		ErrorCode: domain.ErrorCodeFor(err),
	}

	switch {
	case errors.Is(err, domain.ErrInsufficientBalance):
		failure.Message = MsgInsufficientFund
	case errors.Is(err, domain.ErrDailyLimitReached):
		failure.Message = MsgDailyLimit
	case errors.Is(err, domain.ErrInvalidState):
		failure.Message = MsgInvalidState
	case errors.Is(err, domain.ErrPaymentFailed):
		failure.Message = MsgPaymentFailed
	default:
		failure.Message = MsgSpinFailed
	}

	if backendOutcome != nil && backendOutcome.Message != "" {
		failure.Message = backendOutcome.Message
	}
	return failure
}
