package wheel

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// transitions lists the legal state changes of a spin session
var transitions = map[domain.SpinState][]domain.SpinState{
	domain.SpinStateIdle: {
		domain.SpinStateRequestingSpin,
		domain.SpinStateAwaitingExternalPayment,
	},
	domain.SpinStateRequestingSpin: {
		domain.SpinStateAnimating,
		domain.SpinStateFailed,
		domain.SpinStateIdle,
	},
	domain.SpinStateAwaitingExternalPayment: {
		domain.SpinStateAnimating,
		domain.SpinStateFailed,
		domain.SpinStateIdle,
	},
	domain.SpinStateAnimating: {
		domain.SpinStateReconciling,
		domain.SpinStateResolved,
		domain.SpinStateIdle,
	},
	domain.SpinStateReconciling: {
		domain.SpinStateAnimating,
		domain.SpinStateResolved,
		domain.SpinStateIdle,
	},
	domain.SpinStateResolved: {domain.SpinStateIdle},
	domain.SpinStateFailed:   {domain.SpinStateIdle},
}

// CanTransition reports whether from -> to is a legal session transition
func CanTransition(from, to domain.SpinState) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition is one recorded state change
type Transition struct {
	From domain.SpinState
	To   domain.SpinState
	At   time.Time
}

// Session is the live state of one spin. All fields are guarded by the owning orchestrator's mutex.
type Session struct {
	ID         uuid.UUID
	State      domain.SpinState
	Request    domain.SpinRequest
	Outcome    *domain.SpinOutcome
	BaselineID int64
	InvoiceURL string
	Animation  *domain.AnimationPlan
	CreatedAt  time.Time
	History    []Transition

	ctx         context.Context
	cancel      context.CancelFunc
	reconciling bool
	presented   bool
}

func newSession(parent context.Context, req domain.SpinRequest, now time.Time) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:        uuid.New(),
		State:     domain.SpinStateIdle,
		Request:   req,
		CreatedAt: now,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// transition moves the session to next, recording the change
func (s *Session) transition(next domain.SpinState, now time.Time) error {
	if !CanTransition(s.State, next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, s.State, next)
	}
	s.History = append(s.History, Transition{From: s.State, To: next, At: now})
	s.State = next
	return nil
}

// stop cancels the session context, ending its animation timer and poller. Safe to call repeatedly.
func (s *Session) stop() {
	s.cancel()
}

// Path returns the states the session has passed through, starting with Idle
func (s *Session) Path() []domain.SpinState {
	path := []domain.SpinState{domain.SpinStateIdle}
	for _, t := range s.History {
		path = append(path, t.To)
	}
	return path
}

func (s *Session) snapshot() domain.SessionSnapshot {
	snap := domain.SessionSnapshot{
		ID:          s.ID,
		State:       s.State,
		Request:     s.Request,
		BaselineID:  s.BaselineID,
		InvoiceURL:  s.InvoiceURL,
		Reconciling: s.reconciling,
		CreatedAt:   s.CreatedAt,
	}
	if s.Animation != nil {
		plan := *s.Animation
		snap.Animation = &plan
	}
	return snap
}
