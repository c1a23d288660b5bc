package wheel

import (
	"math"
	"sync"
	"time"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// normalizeAngle maps any angle into [0, 360)
func normalizeAngle(deg float64) float64 {
	n := math.Mod(deg, domain.DegreesPerTurn)
	if n < 0 {
		n += domain.DegreesPerTurn
	}
	return n
}

// ComputeTargetRotation returns the absolute rotation the wheel must reach so that
// it comes to rest at landingAngle after at least minFullTurns revolutions.
// The result is never less than accumulated and result mod 360 == landingAngle.
func ComputeTargetRotation(accumulated, landingAngle float64, minFullTurns int) float64 {
	if minFullTurns < 1 {
		minFullTurns = 1
	}

	currentPosition := normalizeAngle(accumulated)
	delta := normalizeAngle(normalizeAngle(landingAngle) - currentPosition)

	return accumulated + float64(minFullTurns)*domain.DegreesPerTurn + delta
}

// Animator owns the wheel's rotation state. Accumulated rotation only grows,
// so consecutive spins never snap the wheel backwards.
type Animator struct {
	mu           sync.Mutex
	accumulated  float64
	display      float64
	minFullTurns int
	duration     time.Duration
	now          func() time.Time
}

// NewAnimator creates an animator starting at rotation zero
func NewAnimator(minFullTurns int, duration time.Duration) *Animator {
	if minFullTurns < 1 {
		minFullTurns = DefaultMinFullTurns
	}
	if duration <= 0 {
		duration = DefaultAnimationDuration
	}
	return &Animator{
		minFullTurns: minFullTurns,
		duration:     duration,
		now:          time.Now,
	}
}

// Spin advances the accumulated rotation to the next target for landingAngle
// and returns the plan the renderer should animate.
func (a *Animator) Spin(landingAngle float64, meaningful bool) domain.AnimationPlan {
	a.mu.Lock()
	defer a.mu.Unlock()

	from := a.accumulated
	to := ComputeTargetRotation(from, landingAngle, a.minFullTurns)
	a.accumulated = to
	a.display = normalizeAngle(to)

	return domain.AnimationPlan{
		From:       from,
		To:         to,
		Duration:   a.duration,
		DurationMs: a.duration.Milliseconds(),
		StartedAt:  a.now(),
		Meaningful: meaningful,
	}
}

// Accumulated returns the total rotation since the wheel was mounted
func (a *Animator) Accumulated() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.accumulated
}

// Display returns the rotation the wheel rests at, in [0, 360)
func (a *Animator) Display() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.display
}

// Duration returns the fixed animation duration
func (a *Animator) Duration() time.Duration {
	return a.duration
}
