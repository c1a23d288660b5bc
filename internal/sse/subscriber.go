package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/WheelPortal_Go/internal/event"
)

// streamedTypes are the bus events forwarded to the UI
var streamedTypes = []event.Type{
	event.SpinStateChanged,
	event.SpinAnimationStarted,
	event.SpinOutcomeReady,
	event.SpinReconciled,
}

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every spin lifecycle event
func (s *Subscriber) Subscribe() {
	names := make([]string, 0, len(streamedTypes))
	for _, t := range streamedTypes {
		s.bus.Subscribe(t, s.forward)
		names = append(names, string(t))
	}
	slog.Info(LogMsgSubscriberReady, "types", names)
}

// forward sends the event to the clients of the user it belongs to.
// Bus events without a user are not streamed.
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	userID := evt.UserID()
	if userID == "" {
		return nil
	}

	s.hub.Broadcast(userID, string(evt.Type), evt.Payload)
	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type, "user_id", userID)
	return nil
}
