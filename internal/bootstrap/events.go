package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/WheelPortal_Go/internal/event"
	"github.com/osse101/WheelPortal_Go/internal/metrics"
	"github.com/osse101/WheelPortal_Go/internal/sse"
)

// InitializeEventSystem creates the in-process event bus, registers the metrics
// collector and forwards spin events to the SSE hub. The hub must already be started.
func InitializeEventSystem(hub *sse.Hub) (event.Bus, error) {
	bus := event.NewMemoryBus()

	if err := metrics.NewEventMetricsCollector().Register(bus); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, bus).Subscribe()
	slog.Info(LogMsgEventStreamSubscribed)

	slog.Info(LogMsgEventSystemInitialized)
	return bus, nil
}
