package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DegreesPerTurn is one full revolution of the wheel
const DegreesPerTurn = 360.0

// PaymentMode selects how a spin is paid for
type PaymentMode string

const (
	// PaymentModeInternalDebit charges the account balance; the spin call returns the outcome
	PaymentModeInternalDebit PaymentMode = "internal_debit"
	// PaymentModeExternalInvoice goes through an external payment provider; the outcome is discovered later
	PaymentModeExternalInvoice PaymentMode = "external_invoice"
)

// Valid reports whether the mode is one the backend understands
func (m PaymentMode) Valid() bool {
	return m == PaymentModeInternalDebit || m == PaymentModeExternalInvoice
}

// PaymentStatus is reported by the external payment surface
type PaymentStatus string

const (
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusPending   PaymentStatus = "pending"
)

// Prize types as reported by the backend
const (
	PrizeTypeNone         = "none"
	PrizeTypeBalance      = "balance"
	PrizeTypeBonusDays    = "bonus_days"
	PrizeTypeTraffic      = "traffic"
	PrizeTypeDiscount     = "discount"
	PrizeTypePromoCode    = "promo_code"
	PrizeTypeGiftKey      = "gift_key"
	PrizeTypeSubscription = "subscription"
)

// PrizeSector is one slot on the wheel. Emoji and Color are opaque rendering hints.
type PrizeSector struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
	Emoji string `json:"emoji,omitempty"`
	Color string `json:"color,omitempty"`
	Type  string `json:"prize_type,omitempty"`
}

// SectorAngle returns the angular position of the sector at index on a wheel with total sectors
func SectorAngle(index, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(index) / float64(total) * DegreesPerTurn
}

// WheelConfig is the wheel configuration snapshot the backend returns
type WheelConfig struct {
	Prizes         []PrizeSector   `json:"prizes"`
	DailyLimit     int             `json:"daily_limit"`
	SpinsUsedToday int             `json:"spins_used_today"`
	CostInternal   decimal.Decimal `json:"cost_internal"`
	CostExternal   decimal.Decimal `json:"cost_external"`
	CanSpin        bool            `json:"can_spin"`
	CanSpinReason  string          `json:"can_spin_reason,omitempty"`
}

// SpinRequest is created fresh for every user-initiated spin
type SpinRequest struct {
	PaymentMode    PaymentMode `json:"payment_mode"`
	PaymentSubType string      `json:"payment_sub_type,omitempty"`
}

// SpinOutcome is the result of a completed spin.
// RedeemCode is single-disclosure and never serialized into logs or events.
type SpinOutcome struct {
	Success      bool    `json:"success"`
	PrizeID      *int64  `json:"prize_id"`
	PrizeType    string  `json:"prize_type,omitempty"`
	PrizeValue   string  `json:"prize_value,omitempty"`
	PrizeLabel   string  `json:"prize_label,omitempty"`
	Emoji        string  `json:"emoji,omitempty"`
	LandingAngle float64 `json:"landing_angle"`
	Message      string  `json:"message,omitempty"`
	ErrorCode    string  `json:"error_code,omitempty"`
	RedeemCode   string  `json:"-"`
}

// HasPrize reports whether the outcome carries a prize
func (o *SpinOutcome) HasPrize() bool {
	return o != nil && o.PrizeID != nil && o.PrizeType != PrizeTypeNone
}

// HistoryRecord is an append-only record of a past spin. IDs increase monotonically.
type HistoryRecord struct {
	ID            int64           `json:"id"`
	PrizeID       *int64          `json:"prize_id,omitempty"`
	PrizeType     string          `json:"prize_type"`
	PrizeValue    string          `json:"prize_value"`
	PrizeLabel    string          `json:"prize_label"`
	Emoji         string          `json:"emoji,omitempty"`
	PaymentType   string          `json:"payment_type"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	RedeemCode    string          `json:"redeem_code,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// HistoryPage is one page of the history feed
type HistoryPage struct {
	Items []HistoryRecord `json:"items"`
	Total int             `json:"total"`
}

// Invoice references an external payment
type Invoice struct {
	InvoiceURL string `json:"invoice_url"`
}

// SpinState is a spin session lifecycle state
type SpinState string

const (
	SpinStateIdle                    SpinState = "Idle"
	SpinStateRequestingSpin          SpinState = "RequestingSpin"
	SpinStateAwaitingExternalPayment SpinState = "AwaitingExternalPayment"
	SpinStateAnimating               SpinState = "Animating"
	SpinStateReconciling             SpinState = "Reconciling"
	SpinStateResolved                SpinState = "Resolved"
	SpinStateFailed                  SpinState = "Failed"
)

// Terminal reports whether no further transitions happen without a new spin
func (s SpinState) Terminal() bool {
	return s == SpinStateResolved || s == SpinStateFailed || s == SpinStateIdle
}

// AnimationPlan tells the renderer how to rotate the wheel
type AnimationPlan struct {
	From       float64       `json:"from"`
	To         float64       `json:"to"`
	Duration   time.Duration `json:"-"`
	DurationMs int64         `json:"duration_ms"`
	StartedAt  time.Time     `json:"started_at"`
	Meaningful bool          `json:"meaningful"` // false when the landing angle is a placeholder
}

// SessionSnapshot is a read-only view of the active spin session
type SessionSnapshot struct {
	ID          uuid.UUID      `json:"id"`
	State       SpinState      `json:"state"`
	Request     SpinRequest    `json:"request"`
	BaselineID  int64          `json:"baseline_id,omitempty"`
	InvoiceURL  string         `json:"invoice_url,omitempty"`
	Animation   *AnimationPlan `json:"animation,omitempty"`
	Reconciling bool           `json:"reconciling"`
	CreatedAt   time.Time      `json:"created_at"`
}
