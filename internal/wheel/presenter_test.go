package wheel

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func TestBuildPresentation_Headlines(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		outcome  *domain.SpinOutcome
		fallback bool
		want     Headline
	}{
		{"prize", &domain.SpinOutcome{Success: true, PrizeID: int64Ptr(7), PrizeType: domain.PrizeTypeBalance}, false, HeadlineSuccess},
		{"no prize type", &domain.SpinOutcome{Success: true, PrizeID: int64Ptr(7), PrizeType: domain.PrizeTypeNone}, false, HeadlineNoPrize},
		{"nil prize", &domain.SpinOutcome{Success: true}, false, HeadlineNoPrize},
		{"failure", &domain.SpinOutcome{Success: false, ErrorCode: domain.ErrCodeInsufficientBalance}, false, HeadlineFailure},
		{"fallback", FallbackOutcome(), true, HeadlineFallback},
		{"missing outcome", nil, false, HeadlineFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := BuildPresentation(id, tt.outcome, tt.fallback)
			assert.Equal(t, tt.want, p.Headline)
			assert.Equal(t, id, p.SessionID)
		})
	}
}

func TestBuildPresentation_RedeemCodeOnlyForRedeemablePrizes(t *testing.T) {
	id := uuid.New()

	promo := BuildPresentation(id, &domain.SpinOutcome{
		Success: true, PrizeID: int64Ptr(1), PrizeType: domain.PrizeTypePromoCode, RedeemCode: "PROMO-1",
	}, false)
	assert.True(t, promo.HasRedeemCode)
	assert.Equal(t, "PROMO-1", promo.RedeemCode)

	gift := BuildPresentation(id, &domain.SpinOutcome{
		Success: true, PrizeID: int64Ptr(2), PrizeType: domain.PrizeTypeGiftKey, RedeemCode: "GIFT-1",
	}, false)
	assert.True(t, gift.HasRedeemCode)

	balance := BuildPresentation(id, &domain.SpinOutcome{
		Success: true, PrizeID: int64Ptr(3), PrizeType: domain.PrizeTypeBalance, RedeemCode: "STRAY",
	}, false)
	assert.False(t, balance.HasRedeemCode)
	assert.Empty(t, balance.RedeemCode)
}

func TestFallbackOutcome(t *testing.T) {
	outcome := FallbackOutcome()

	assert.True(t, outcome.Success)
	assert.Nil(t, outcome.PrizeID)
	assert.Equal(t, MsgFallback, outcome.Message)
}

func TestOutcomePresenter_RevealDisclosesCodeOnce(t *testing.T) {
	op := NewOutcomePresenter()
	id := uuid.New()

	shown := op.Present(context.Background(), BuildPresentation(id, &domain.SpinOutcome{
		Success: true, PrizeID: int64Ptr(1), PrizeType: domain.PrizeTypePromoCode, RedeemCode: "ONCE",
	}, false))
	assert.Empty(t, shown.RedeemCode)
	assert.True(t, shown.HasRedeemCode)
	assert.False(t, shown.PresentedAt.IsZero())

	current, ok := op.Current()
	require.True(t, ok)
	assert.Empty(t, current.RedeemCode)

	first, ok := op.Reveal()
	require.True(t, ok)
	assert.Equal(t, "ONCE", first.RedeemCode)

	second, ok := op.Reveal()
	require.True(t, ok)
	assert.Empty(t, second.RedeemCode)
	assert.True(t, second.HasRedeemCode)
}

func TestOutcomePresenter_Clear(t *testing.T) {
	op := NewOutcomePresenter()
	id := uuid.New()
	op.Present(context.Background(), BuildPresentation(id, FallbackOutcome(), true))

	op.Clear(uuid.New())
	_, ok := op.Current()
	assert.True(t, ok, "clearing another session keeps the pending presentation")

	op.Clear(id)
	_, ok = op.Reveal()
	assert.False(t, ok)

	op.Present(context.Background(), BuildPresentation(id, FallbackOutcome(), true))
	op.Clear(uuid.Nil)
	_, ok = op.Current()
	assert.False(t, ok)
}
