package wheel

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// Headline selects the outcome view variant
type Headline string

const (
	HeadlineSuccess  Headline = "success"
	HeadlineNoPrize  Headline = "no_prize"
	HeadlineFailure  Headline = "failure"
	HeadlineFallback Headline = "fallback"
)

// Presentation is what the outcome view shows for one spin
type Presentation struct {
	SessionID     uuid.UUID `json:"session_id"`
	Headline      Headline  `json:"headline"`
	Success       bool      `json:"success"`
	PrizeID       *int64    `json:"prize_id"`
	PrizeType     string    `json:"prize_type,omitempty"`
	PrizeLabel    string    `json:"prize_label,omitempty"`
	Emoji         string    `json:"emoji,omitempty"`
	Message       string    `json:"message,omitempty"`
	ErrorCode     string    `json:"error_code,omitempty"`
	HasRedeemCode bool      `json:"has_redeem_code"`
	RedeemCode    string    `json:"redeem_code,omitempty"`
	PresentedAt   time.Time `json:"presented_at"`
}

// redeemablePrizeTypes are the prize types that carry a single-disclosure code
var redeemablePrizeTypes = map[string]bool{
	domain.PrizeTypePromoCode: true,
	domain.PrizeTypeGiftKey:   true,
}

// BuildPresentation converts an outcome into its presentation. fallback marks
// the "payment succeeded, outcome not confirmed yet" result.
func BuildPresentation(sessionID uuid.UUID, outcome *domain.SpinOutcome, fallback bool) Presentation {
	p := Presentation{SessionID: sessionID}
	if outcome == nil {
		p.Headline = HeadlineFailure
		p.Message = MsgSpinFailed
		return p
	}

	p.Success = outcome.Success
	p.PrizeID = outcome.PrizeID
	p.PrizeType = outcome.PrizeType
	p.PrizeLabel = outcome.PrizeLabel
	p.Emoji = outcome.Emoji
	p.Message = outcome.Message
	p.ErrorCode = outcome.ErrorCode

	switch {
	case fallback:
		p.Headline = HeadlineFallback
	case !outcome.Success:
		p.Headline = HeadlineFailure
	case !outcome.HasPrize():
		p.Headline = HeadlineNoPrize
	default:
		p.Headline = HeadlineSuccess
	}

	if p.Headline == HeadlineSuccess && redeemablePrizeTypes[outcome.PrizeType] && outcome.RedeemCode != "" {
		p.HasRedeemCode = true
		p.RedeemCode = outcome.RedeemCode
	}
	return p
}

// FallbackOutcome is used when the animation ends before reconciliation finds the spin
func FallbackOutcome() *domain.SpinOutcome {
	return &domain.SpinOutcome{
		Success: true,
		Message: MsgFallback,
	}
}

// OutcomePresenter holds the pending presentation of one wheel until it is dismissed.
// The redeem code is handed out by the first Reveal and dropped afterwards.
type OutcomePresenter struct {
	mu      sync.Mutex
	current *Presentation
	now     func() time.Time
}

// NewOutcomePresenter creates an empty presenter
func NewOutcomePresenter() *OutcomePresenter {
	return &OutcomePresenter{now: time.Now}
}

// Present stores p as the pending presentation and returns it with the redeem code stripped
func (op *OutcomePresenter) Present(_ context.Context, p Presentation) Presentation {
	op.mu.Lock()
	defer op.mu.Unlock()

	p.PresentedAt = op.now()
	op.current = &p

	shown := p
	shown.RedeemCode = ""
	return shown
}

// Reveal returns the pending presentation. The redeem code is included on the first call only.
func (op *OutcomePresenter) Reveal() (Presentation, bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.current == nil {
		return Presentation{}, false
	}
	p := *op.current
	op.current.RedeemCode = ""
	return p, true
}

// Current returns the pending presentation without disclosing the redeem code
func (op *OutcomePresenter) Current() (Presentation, bool) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.current == nil {
		return Presentation{}, false
	}
	p := *op.current
	p.RedeemCode = ""
	return p, true
}

// Clear drops the pending presentation of sessionID. uuid.Nil clears whatever is pending.
func (op *OutcomePresenter) Clear(sessionID uuid.UUID) {
	op.mu.Lock()
	defer op.mu.Unlock()

	if op.current == nil {
		return
	}
	if sessionID == uuid.Nil || op.current.SessionID == sessionID {
		op.current = nil
	}
}
