package wheel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/WheelPortal_Go/internal/domain"
	"github.com/osse101/WheelPortal_Go/internal/logger"
	"github.com/osse101/WheelPortal_Go/internal/metrics"
)

// ReconcileConfig controls the history poller
type ReconcileConfig struct {
	GraceDelay  time.Duration
	MaxAttempts int
	InterDelay  time.Duration
}

// DefaultReconcileConfig returns the production poller settings
func DefaultReconcileConfig() ReconcileConfig {
	return ReconcileConfig{
		GraceDelay:  DefaultGraceDelay,
		MaxAttempts: DefaultMaxAttempts,
		InterDelay:  DefaultInterDelay,
	}
}

// HistoryPoller reconciles external payments by polling the history feed for a
// record newer than the baseline. Detection is by ID only: two spins can
// legitimately produce identical prize content.
type HistoryPoller struct {
	feed HistoryFeed
	cfg  ReconcileConfig
}

// NewHistoryPoller creates a poller over feed
func NewHistoryPoller(feed HistoryFeed, cfg ReconcileConfig) *HistoryPoller {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.GraceDelay < 0 {
		cfg.GraceDelay = 0
	}
	if cfg.InterDelay < 0 {
		cfg.InterDelay = 0
	}
	return &HistoryPoller{feed: feed, cfg: cfg}
}

// Reconcile implements Reconciler. Fetch errors count as "not yet"; it never fails.
func (p *HistoryPoller) Reconcile(ctx context.Context, baselineID int64) *domain.SpinOutcome {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgReconcileStarted, "baseline_id", baselineID, "max_attempts", p.cfg.MaxAttempts)

	if !sleepContext(ctx, p.cfg.GraceDelay) {
		metrics.ReconcileResults.WithLabelValues(metrics.ReconcileResultCancelled).Inc()
		log.Debug(LogMsgReconcileCancelled, "attempt", 0)
		return nil
	}

	for attempt := 1; attempt <= p.cfg.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			metrics.ReconcileResults.WithLabelValues(metrics.ReconcileResultCancelled).Inc()
			log.Debug(LogMsgReconcileCancelled, "attempt", attempt)
			return nil
		}

		metrics.ReconcileAttempts.Inc()
		record, err := p.newest(ctx)
		switch {
		case err != nil:
			log.Debug(LogMsgReconcileAttemptError, "attempt", attempt, "error", err)
		case record != nil && (baselineID == 0 || record.ID > baselineID):
			metrics.ReconcileResults.WithLabelValues(metrics.ReconcileResultFound).Inc()
			log.Info(LogMsgReconcileFound, "record_id", record.ID, "baseline_id", baselineID, "attempt", attempt)
			return OutcomeFromRecord(record)
		}

		if attempt < p.cfg.MaxAttempts && !sleepContext(ctx, p.cfg.InterDelay) {
			metrics.ReconcileResults.WithLabelValues(metrics.ReconcileResultCancelled).Inc()
			log.Debug(LogMsgReconcileCancelled, "attempt", attempt)
			return nil
		}
	}

	metrics.ReconcileResults.WithLabelValues(metrics.ReconcileResultExhausted).Inc()
	log.Info(LogMsgReconcileExhausted, "baseline_id", baselineID, "attempts", p.cfg.MaxAttempts)
	return nil
}

// newest fetches the most recent history record, converting a panicking feed into an error
func (p *HistoryPoller) newest(ctx context.Context) (record *domain.HistoryRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error(LogMsgReconcilePanic, "panic", r)
			record, err = nil, fmt.Errorf("history feed panic: %v", r)
		}
	}()
	return LatestRecord(ctx, p.feed)
}

// LatestRecord returns the newest history record, or nil when the history is empty
func LatestRecord(ctx context.Context, feed HistoryFeed) (*domain.HistoryRecord, error) {
	page, err := feed.GetHistory(ctx, 1, HistoryProbePageSize)
	if err != nil {
		return nil, err
	}
	if page == nil || len(page.Items) == 0 {
		return nil, nil
	}
	return &page.Items[0], nil
}

// LatestHistoryID returns the highest known history ID, 0 when there is no history.
// Feeds implementing LatestIDSource answer directly instead of reading a page.
func LatestHistoryID(ctx context.Context, feed HistoryFeed) (int64, error) {
	if src, ok := feed.(LatestIDSource); ok {
		return src.LatestHistoryID(ctx)
	}
	record, err := LatestRecord(ctx, feed)
	if err != nil {
		return 0, err
	}
	if record == nil {
		return 0, nil
	}
	return record.ID, nil
}

// OutcomeFromRecord rebuilds a spin outcome from a history record.
// History carries no landing angle, so LandingAngle stays zero and is not meaningful.
func OutcomeFromRecord(record *domain.HistoryRecord) *domain.SpinOutcome {
	outcome := &domain.SpinOutcome{
		Success:    true,
		PrizeID:    record.PrizeID,
		PrizeType:  record.PrizeType,
		PrizeValue: record.PrizeValue,
		PrizeLabel: record.PrizeLabel,
		Emoji:      record.Emoji,
		RedeemCode: record.RedeemCode,
	}

	if record.PrizeType == domain.PrizeTypeNone || record.PrizeType == "" {
		outcome.PrizeID = nil
		outcome.Message = MsgNoPrize
		return outcome
	}

	outcome.Message = fmt.Sprintf(MsgPrizeWonFormat, prizeDisplayName(record))
	return outcome
}

// prizeDisplayName prefers the backend label and falls back to "<Type> <value>"
func prizeDisplayName(record *domain.HistoryRecord) string {
	if strings.TrimSpace(record.PrizeLabel) != "" {
		return record.PrizeLabel
	}
	name := cases.Title(language.English).String(strings.ReplaceAll(record.PrizeType, "_", " "))
	if record.PrizeValue != "" {
		name = record.PrizeValue + " " + name
	}
	return name
}

// sleepContext waits for d or until ctx is done. It reports false if ctx ended first.
func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return ctx.Err() == nil
	case <-ctx.Done():
		return false
	}
}
