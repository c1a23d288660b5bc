package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/event"
)

func TestEventMetricsCollector_StateTransitions(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))

	counter := SpinStateTransitions.WithLabelValues(string(domain.SpinStateIdle), string(domain.SpinStateRequestingSpin))
	before := testutil.ToFloat64(counter)
	inFlight := testutil.ToFloat64(SpinsInFlight)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.NewSpinStateChangedEvent("u1", "s1", domain.SpinStateIdle, domain.SpinStateRequestingSpin)))
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
	assert.Equal(t, inFlight+1, testutil.ToFloat64(SpinsInFlight))

	require.NoError(t, bus.Publish(ctx, event.NewSpinStateChangedEvent("u1", "s1", domain.SpinStateRequestingSpin, domain.SpinStateFailed)))
	assert.Equal(t, inFlight, testutil.ToFloat64(SpinsInFlight))

	// Dismissing a finished spin does not touch the in-flight gauge
	require.NoError(t, bus.Publish(ctx, event.NewSpinStateChangedEvent("u1", "s1", domain.SpinStateFailed, domain.SpinStateIdle)))
	assert.Equal(t, inFlight, testutil.ToFloat64(SpinsInFlight))
}

func TestEventMetricsCollector_OutcomeAndLateResults(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	outcomes := SpinOutcomes.WithLabelValues("fallback")
	before := testutil.ToFloat64(outcomes)
	require.NoError(t, bus.Publish(ctx, event.NewSpinOutcomeReadyEvent(domain.SpinOutcomeReadyPayload{
		UserID:   "u1",
		Headline: "fallback",
		Success:  true,
		Fallback: true,
	})))
	assert.Equal(t, before+1, testutil.ToFloat64(outcomes))

	late := testutil.ToFloat64(ReconcileLateResults)
	require.NoError(t, bus.Publish(ctx, event.NewSpinReconciledEvent("u1", "s1", true, true)))
	require.NoError(t, bus.Publish(ctx, event.NewSpinReconciledEvent("u1", "s1", false, true)))
	require.NoError(t, bus.Publish(ctx, event.NewSpinReconciledEvent("u1", "s1", true, false)))
	assert.Equal(t, late+1, testutil.ToFloat64(ReconcileLateResults))
}

func TestEventMetricsCollector_InvalidPayload(t *testing.T) {
	collector := NewEventMetricsCollector()
	errs := EventHandlerErrors.WithLabelValues(string(event.SpinAnimationStarted))
	before := testutil.ToFloat64(errs)

	err := collector.HandleEvent(context.Background(), event.Event{
		Type:    event.SpinAnimationStarted,
		Payload: make(chan int),
	})

	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(errs))
}
