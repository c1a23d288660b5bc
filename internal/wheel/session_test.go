package wheel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]domain.SpinState{
		{domain.SpinStateIdle, domain.SpinStateRequestingSpin},
		{domain.SpinStateIdle, domain.SpinStateAwaitingExternalPayment},
		{domain.SpinStateRequestingSpin, domain.SpinStateAnimating},
		{domain.SpinStateRequestingSpin, domain.SpinStateFailed},
		{domain.SpinStateAwaitingExternalPayment, domain.SpinStateAnimating},
		{domain.SpinStateAwaitingExternalPayment, domain.SpinStateFailed},
		{domain.SpinStateAwaitingExternalPayment, domain.SpinStateIdle},
		{domain.SpinStateAnimating, domain.SpinStateReconciling},
		{domain.SpinStateAnimating, domain.SpinStateResolved},
		{domain.SpinStateReconciling, domain.SpinStateAnimating},
		{domain.SpinStateReconciling, domain.SpinStateResolved},
		{domain.SpinStateResolved, domain.SpinStateIdle},
		{domain.SpinStateFailed, domain.SpinStateIdle},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	rejected := [][2]domain.SpinState{
		{domain.SpinStateIdle, domain.SpinStateAnimating},
		{domain.SpinStateIdle, domain.SpinStateResolved},
		{domain.SpinStateRequestingSpin, domain.SpinStateReconciling},
		{domain.SpinStateAnimating, domain.SpinStateFailed},
		{domain.SpinStateResolved, domain.SpinStateAnimating},
		{domain.SpinStateFailed, domain.SpinStateResolved},
	}
	for _, tr := range rejected {
		assert.False(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}
}

func TestSession_Transition(t *testing.T) {
	s := newSession(context.Background(), domain.SpinRequest{PaymentMode: domain.PaymentModeInternalDebit}, time.Now())
	defer s.stop()

	require.NoError(t, s.transition(domain.SpinStateRequestingSpin, time.Now()))
	require.NoError(t, s.transition(domain.SpinStateAnimating, time.Now()))

	err := s.transition(domain.SpinStateFailed, time.Now())
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, domain.SpinStateAnimating, s.State)

	require.NoError(t, s.transition(domain.SpinStateResolved, time.Now()))
	assert.Equal(t, []domain.SpinState{
		domain.SpinStateIdle,
		domain.SpinStateRequestingSpin,
		domain.SpinStateAnimating,
		domain.SpinStateResolved,
	}, s.Path())
}

func TestSession_StopCancelsContext(t *testing.T) {
	s := newSession(context.Background(), domain.SpinRequest{}, time.Now())

	s.stop()
	s.stop()

	assert.ErrorIs(t, s.ctx.Err(), context.Canceled)
}
