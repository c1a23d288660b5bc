package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/WheelPortal_Go/internal/bootstrap"
	"github.com/osse101/WheelPortal_Go/internal/config"
	"github.com/osse101/WheelPortal_Go/internal/handler"
	"github.com/osse101/WheelPortal_Go/internal/portal"
	"github.com/osse101/WheelPortal_Go/internal/server"
	"github.com/osse101/WheelPortal_Go/internal/sse"
	"github.com/osse101/WheelPortal_Go/internal/wheel"
)

// @title Wheel Portal API
// @version 1.0
// @description Prize wheel spin orchestration for the Mini-App
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		slog.Warn(w)
	}

	handler.InitValidator()

	hub := sse.NewHub()
	hub.Start()

	bus, err := bootstrap.InitializeEventSystem(hub)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	backend := portal.NewClient(cfg.PortalAPIURL, cfg.PortalAPITimeout)

	history, err := bootstrap.InitializeHistory(context.Background(), cfg, backend)
	if err != nil {
		slog.Error("Failed to initialize history source", "error", err)
		os.Exit(1)
	}

	wheelCfg := wheel.Config{
		AnimationDuration: cfg.AnimationDuration,
		MinFullTurns:      cfg.MinFullTurns,
		Reconcile: wheel.ReconcileConfig{
			GraceDelay:  cfg.GraceDelay,
			MaxAttempts: cfg.MaxAttempts,
			InterDelay:  cfg.InterDelay,
		},
	}
	registry := wheel.NewRegistry(cfg.SessionCacheSize, cfg.SessionIdleTTL, func(userID string) *wheel.Orchestrator {
		return wheel.NewOrchestrator(userID, wheel.Dependencies{
			Backend: backend,
			History: history.Feed(userID),
			Bus:     bus,
		}, wheelCfg)
	})

	srv := server.NewServer(server.Options{
		Port:            cfg.Port,
		TrustedProxies:  cfg.TrustedProxies,
		RateLimit:       cfg.RateLimit,
		RateLimitWindow: cfg.RateLimitWindow,
	}, history.ReadinessPool(), handler.NewWheelHandler(registry, backend, history.Feed), hub)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{
		Server:   srv,
		Registry: registry,
		Hub:      hub,
		Pool:     history.Pool,
	})
}
