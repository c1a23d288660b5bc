package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// UserID returns the user the event belongs to, if it was tagged with one
func (e Event) UserID() string {
	if e.Metadata == nil {
		return ""
	}
	id, _ := e.Metadata[MetadataKeyUserID].(string)
	return id
}

// Spin lifecycle event types
const (
	SpinStateChanged     Type = domain.EventTypeSpinStateChanged
	SpinAnimationStarted Type = domain.EventTypeSpinAnimationStarted
	SpinOutcomeReady     Type = domain.EventTypeSpinOutcomeReady
	SpinReconciled       Type = domain.EventTypeSpinReconciled
)

func newUserEvent(t Type, userID string, payload interface{}) Event {
	return Event{
		Version:  EventSchemaVersion,
		Type:     t,
		Payload:  payload,
		Metadata: Metadata{MetadataKeyUserID: userID},
	}
}

// NewSpinStateChangedEvent creates a state transition event
func NewSpinStateChangedEvent(userID, sessionID string, from, to domain.SpinState) Event {
	return newUserEvent(SpinStateChanged, userID, domain.SpinStateChangedPayload{
		UserID:    userID,
		SessionID: sessionID,
		From:      from,
		To:        to,
	})
}

// NewSpinAnimationStartedEvent creates an animation started event
func NewSpinAnimationStartedEvent(userID, sessionID string, plan domain.AnimationPlan) Event {
	return newUserEvent(SpinAnimationStarted, userID, domain.SpinAnimationStartedPayload{
		UserID:    userID,
		SessionID: sessionID,
		Animation: plan,
	})
}

// NewSpinOutcomeReadyEvent creates the once-per-spin reveal event
func NewSpinOutcomeReadyEvent(payload domain.SpinOutcomeReadyPayload) Event {
	return newUserEvent(SpinOutcomeReady, payload.UserID, payload)
}

// NewSpinReconciledEvent creates a reconciliation result event
func NewSpinReconciledEvent(userID, sessionID string, found, late bool) Event {
	return newUserEvent(SpinReconciled, userID, domain.SpinReconciledPayload{
		UserID:    userID,
		SessionID: sessionID,
		Found:     found,
		Late:      late,
	})
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process publishers hand over the typed struct, serialized sources need the round trip.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers.
// Handlers run synchronously in subscription order.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	if len(handlers) == 0 {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
