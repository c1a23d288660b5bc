package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/WheelPortal_Go/internal/server"
	"github.com/osse101/WheelPortal_Go/internal/sse"
	"github.com/osse101/WheelPortal_Go/internal/wheel"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server   *server.Server
	Registry *wheel.Registry
	Hub      *sse.Hub
	Pool     *pgxpool.Pool
}

// GracefulShutdown stops the application in order:
// 1. Event streams (open streams would otherwise hold the server open)
// 2. HTTP server (stop accepting new requests, drain the rest)
// 3. Spin sessions (cancel timers and reconciliation pollers)
// 4. Database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownEventStream)
	if components.Hub != nil {
		components.Hub.Stop()
	}

	slog.Info(LogMsgShuttingDownServer)
	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	slog.Info(LogMsgShuttingDownSessions)
	if components.Registry != nil {
		if err := components.Registry.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSessionShutdownFailed, "error", err)
		}
	}

	if components.Pool != nil {
		slog.Info(LogMsgClosingDatabase)
		components.Pool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
