package handler

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/osse101/WheelPortal_Go/internal/database"
)

const readinessTimeout = 2 * time.Second

// History sources reported by the readiness probe
const (
	HistorySourcePortal   = "portal"
	HistorySourcePostgres = "postgres"
)

// Build-time variables (injected via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unset"
)

// HealthResponse is the body of the probe endpoints
type HealthResponse struct {
	Status        string `json:"status"`
	HistorySource string `json:"history_source,omitempty"`
	Message       string `json:"message,omitempty"`
}

// VersionInfo describes the running build
type VersionInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	GitCommit string `json:"git_commit,omitempty"`
}

// HandleHealthz reports liveness only
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// HandleReadyz reports whether the history source the poller depends on is reachable.
// A nil mirror means history comes straight from the portal and there is nothing local to probe.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(mirror database.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if mirror == nil {
			respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", HistorySource: HistorySourcePortal})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		if err := mirror.Ping(ctx); err != nil {
			slog.Error("History mirror not ready", "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:        "unavailable",
				HistorySource: HistorySourcePostgres,
				Message:       "history mirror unreachable",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok", HistorySource: HistorySourcePostgres})
	}
}

// HandleVersion returns build information
// @Summary Build information
// @Tags health
// @Produce json
// @Success 200 {object} VersionInfo
// @Router /version [get]
func HandleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, VersionInfo{
			Version:   buildVersion(),
			GoVersion: runtime.Version(),
			BuildTime: BuildTime,
			GitCommit: GitCommit,
		})
	}
}

// buildVersion prefers the ldflags value, then $VERSION
func buildVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}
