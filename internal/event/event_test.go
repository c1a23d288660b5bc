package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

func TestMemoryBus_DeliversToSubscribersInOrder(t *testing.T) {
	bus := NewMemoryBus()
	var seen []string

	bus.Subscribe(SpinStateChanged, func(_ context.Context, evt Event) error {
		seen = append(seen, "first:"+evt.UserID())
		return nil
	})
	bus.Subscribe(SpinStateChanged, func(_ context.Context, evt Event) error {
		seen = append(seen, "second:"+evt.UserID())
		return nil
	})
	bus.Subscribe(SpinOutcomeReady, func(context.Context, Event) error {
		seen = append(seen, "wrong type")
		return nil
	})

	evt := NewSpinStateChangedEvent("u1", "s1", domain.SpinStateIdle, domain.SpinStateRequestingSpin)
	require.NoError(t, bus.Publish(context.Background(), evt))

	assert.Equal(t, []string{"first:u1", "second:u1"}, seen)
}

func TestMemoryBus_JoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	failing := func(context.Context, Event) error {
		calls++
		return errors.New("hub closed")
	}
	bus.Subscribe(SpinReconciled, failing)
	bus.Subscribe(SpinReconciled, failing)

	err := bus.Publish(context.Background(), NewSpinReconciledEvent("u1", "s1", false, true))

	require.Error(t, err)
	assert.Equal(t, 2, calls, "a failing handler must not stop the rest")
	assert.Contains(t, err.Error(), "2 errors")
	assert.Contains(t, err.Error(), string(SpinReconciled))
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	bus := NewMemoryBus()
	assert.NoError(t, bus.Publish(context.Background(), Event{Type: "nobody_listens"}))
}

func TestMemoryBus_SubscribeDuringPublish(t *testing.T) {
	bus := NewMemoryBus()
	var wg sync.WaitGroup

	for range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(SpinAnimationStarted, func(context.Context, Event) error { return nil })
		}()
		go func() {
			defer wg.Done()
			_ = bus.Publish(context.Background(), NewSpinAnimationStartedEvent("u1", "s1", domain.AnimationPlan{}))
		}()
	}
	wg.Wait()
}

func TestUserEvents_CarryUserAndSchema(t *testing.T) {
	tests := []struct {
		name string
		evt  Event
		want Type
	}{
		{"state changed", NewSpinStateChangedEvent("u1", "s1", domain.SpinStateIdle, domain.SpinStateRequestingSpin), SpinStateChanged},
		{"animation", NewSpinAnimationStartedEvent("u1", "s1", domain.AnimationPlan{To: 720}), SpinAnimationStarted},
		{"outcome", NewSpinOutcomeReadyEvent(domain.SpinOutcomeReadyPayload{UserID: "u1"}), SpinOutcomeReady},
		{"reconciled", NewSpinReconciledEvent("u1", "s1", true, false), SpinReconciled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.evt.Type)
			assert.Equal(t, EventSchemaVersion, tt.evt.Version)
			assert.Equal(t, "u1", tt.evt.UserID())
		})
	}
}

func TestDecodePayload(t *testing.T) {
	t.Run("typed payload", func(t *testing.T) {
		evt := NewSpinStateChangedEvent("u1", "s1", domain.SpinStateIdle, domain.SpinStateRequestingSpin)

		payload, err := DecodePayload[domain.SpinStateChangedPayload](evt.Payload)

		require.NoError(t, err)
		assert.Equal(t, domain.SpinStateRequestingSpin, payload.To)
	})

	t.Run("map from a serialized source", func(t *testing.T) {
		raw := map[string]interface{}{"user_id": "u", "found": true, "late": false}

		payload, err := DecodePayload[domain.SpinReconciledPayload](raw)

		require.NoError(t, err)
		assert.Equal(t, "u", payload.UserID)
		assert.True(t, payload.Found)
	})

	t.Run("unencodable payload", func(t *testing.T) {
		_, err := DecodePayload[domain.SpinReconciledPayload](make(chan int))
		assert.Error(t, err)
	})
}

func TestEvent_UserIDWithoutMetadata(t *testing.T) {
	assert.Empty(t, Event{}.UserID())
	assert.Empty(t, Event{Metadata: Metadata{MetadataKeyUserID: 42}}.UserID())
}
