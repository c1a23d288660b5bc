package metrics

import (
	"context"
	"strconv"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/event"
	"github.com/osse101/WheelPortal_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.SpinStateChanged,
		event.SpinAnimationStarted,
		event.SpinOutcomeReady,
		event.SpinReconciled,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	var err error
	switch evt.Type {
	case event.SpinStateChanged:
		var p domain.SpinStateChangedPayload
		if p, err = event.DecodePayload[domain.SpinStateChangedPayload](evt.Payload); err == nil {
			recordTransition(p.From, p.To)
		}

	case event.SpinAnimationStarted:
		var p domain.SpinAnimationStartedPayload
		if p, err = event.DecodePayload[domain.SpinAnimationStartedPayload](evt.Payload); err == nil {
			SpinsStarted.WithLabelValues(strconv.FormatBool(p.Animation.Meaningful)).Inc()
		}

	case event.SpinOutcomeReady:
		var p domain.SpinOutcomeReadyPayload
		if p, err = event.DecodePayload[domain.SpinOutcomeReadyPayload](evt.Payload); err == nil {
			SpinOutcomes.WithLabelValues(p.Headline).Inc()
		}

	case event.SpinReconciled:
		var p domain.SpinReconciledPayload
		if p, err = event.DecodePayload[domain.SpinReconciledPayload](evt.Payload); err == nil && p.Late && p.Found {
			ReconcileLateResults.Inc()
		}
	}

	if err != nil {
		EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
		log.Debug(LogMsgEventPayloadInvalid, "type", evt.Type, "error", err)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

// recordTransition counts the transition and tracks spins between request and outcome
func recordTransition(from, to domain.SpinState) {
	SpinStateTransitions.WithLabelValues(string(from), string(to)).Inc()

	switch {
	case from == domain.SpinStateIdle:
		SpinsInFlight.Inc()
	case to == domain.SpinStateResolved, to == domain.SpinStateFailed:
		SpinsInFlight.Dec()
	case to == domain.SpinStateIdle && !from.Terminal():
		SpinsInFlight.Dec()
	}
}
