package wheel

import (
	"context"

	"github.com/osse101/WheelPortal_Go/internal/domain"
)

// HistoryFeed reads the spin history, newest first
type HistoryFeed interface {
	GetHistory(ctx context.Context, page, pageSize int) (*domain.HistoryPage, error)
}

// LatestIDSource is implemented by feeds that can report their newest record ID without paging
type LatestIDSource interface {
	LatestHistoryID(ctx context.Context) (int64, error)
}

// Backend defines the portal backend operations the orchestrator consumes
type Backend interface {
	HistoryFeed
	GetWheelConfig(ctx context.Context) (*domain.WheelConfig, error)
	Spin(ctx context.Context, req domain.SpinRequest) (*domain.SpinOutcome, error)
	CreateExternalInvoice(ctx context.Context) (*domain.Invoice, error)
}

// Reconciler discovers the outcome of an externally paid spin.
// It returns nil when no new record was found or ctx was cancelled.
type Reconciler interface {
	Reconcile(ctx context.Context, baselineID int64) *domain.SpinOutcome
}
