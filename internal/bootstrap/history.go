package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WheelPortal_Go/internal/config"
	"github.com/osse101/WheelPortal_Go/internal/database"
	"github.com/osse101/WheelPortal_Go/internal/database/postgres"
	"github.com/osse101/WheelPortal_Go/internal/handler"
	"github.com/osse101/WheelPortal_Go/internal/wheel"
)

// HistorySource is where reconciliation and the history endpoint read spins from
type HistorySource struct {
	// Pool is nil when history comes from the portal backend
	Pool *pgxpool.Pool
	// Feed returns the history feed of a user
	Feed handler.HistoryFeedFactory
}

// InitializeHistory connects the postgres mirror when HISTORY_SOURCE=postgres,
// otherwise every user's history is read from backend.
func InitializeHistory(ctx context.Context, cfg *config.Config, backend wheel.Backend) (*HistorySource, error) {
	if !cfg.UsePostgresHistory() {
		slog.Info(LogMsgHistoryFromPortal)
		return &HistorySource{
			Feed: func(string) wheel.HistoryFeed { return backend },
		}, nil
	}

	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
	}

	repo := postgres.NewHistoryRepository(pool)
	slog.Info(LogMsgHistoryFromPostgres, "db_host", cfg.DBHost, "db_name", cfg.DBName)

	return &HistorySource{
		Pool: pool,
		Feed: func(userID string) wheel.HistoryFeed { return repo.ForUser(userID) },
	}, nil
}

// ReadinessPool returns the pool the readiness probe pings, or nil
func (h *HistorySource) ReadinessPool() database.Pool {
	if h.Pool == nil {
		return nil
	}
	return h.Pool
}
