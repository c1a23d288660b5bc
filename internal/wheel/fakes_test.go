package wheel

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/event"
)

// scriptedFeed answers GetHistory with respond(call), call counting from 1
type scriptedFeed struct {
	mu      sync.Mutex
	calls   int
	respond func(call int) (*domain.HistoryPage, error)
}

func (f *scriptedFeed) GetHistory(_ context.Context, _, _ int) (*domain.HistoryPage, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.respond(call)
}

func (f *scriptedFeed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// newestID is a feed whose newest record has the given ID on every call
func newestID(id int64) *scriptedFeed {
	return &scriptedFeed{respond: func(int) (*domain.HistoryPage, error) {
		return pageWith(id), nil
	}}
}

func pageWith(id int64) *domain.HistoryPage {
	prizeID := id * 10
	return &domain.HistoryPage{
		Items: []domain.HistoryRecord{{
			ID:         id,
			PrizeID:    &prizeID,
			PrizeType:  domain.PrizeTypeBalance,
			PrizeValue: "100",
			PrizeLabel: "100 coins",
		}},
		Total: int(id),
	}
}

func emptyPage() *domain.HistoryPage {
	return &domain.HistoryPage{}
}

// stubReconciler returns outcome after waiting for release (if set) or ctx
type stubReconciler struct {
	mu      sync.Mutex
	calls   int
	outcome *domain.SpinOutcome
	release chan struct{}
}

func (r *stubReconciler) Reconcile(ctx context.Context, _ int64) *domain.SpinOutcome {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	if r.release != nil {
		select {
		case <-r.release:
		case <-ctx.Done():
			return nil
		}
	}
	return r.outcome
}

func (r *stubReconciler) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type recordedEvent struct {
	evt event.Event
	at  time.Time
}

// eventRecorder captures every spin lifecycle event published on a MemoryBus
type eventRecorder struct {
	mu       sync.Mutex
	events   []recordedEvent
	outcomes chan domain.SpinOutcomeReadyPayload
}

func newEventRecorder(bus event.Bus) *eventRecorder {
	r := &eventRecorder{outcomes: make(chan domain.SpinOutcomeReadyPayload, 8)}
	for _, t := range []event.Type{event.SpinStateChanged, event.SpinAnimationStarted, event.SpinOutcomeReady, event.SpinReconciled} {
		bus.Subscribe(t, r.handle)
	}
	return r
}

func (r *eventRecorder) handle(_ context.Context, evt event.Event) error {
	r.mu.Lock()
	r.events = append(r.events, recordedEvent{evt: evt, at: time.Now()})
	r.mu.Unlock()

	if p, ok := evt.Payload.(domain.SpinOutcomeReadyPayload); ok {
		r.outcomes <- p
	}
	return nil
}

func (r *eventRecorder) ofType(t event.Type) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []recordedEvent
	for _, e := range r.events {
		if e.evt.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// path returns the states of sessionID in order, starting with the first "from"
func (r *eventRecorder) path(sessionID string) []domain.SpinState {
	var states []domain.SpinState
	for _, e := range r.ofType(event.SpinStateChanged) {
		p := e.evt.Payload.(domain.SpinStateChangedPayload)
		if p.SessionID != sessionID {
			continue
		}
		if len(states) == 0 {
			states = append(states, p.From)
		}
		states = append(states, p.To)
	}
	return states
}
