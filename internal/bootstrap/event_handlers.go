package bootstrap

import (
	"log/slog"

	"github.com/osse101/pomoquest/internal/event"
	"github.com/osse101/pomoquest/internal/metrics"
	"github.com/osse101/pomoquest/internal/sse"
)

// RegisterEventHandlers subscribes the event-driven metrics collector and
// the SSE bridge to the bus.
func RegisterEventHandlers(bus event.Bus, hub *sse.Hub) {
	metrics.NewEventMetricsCollector().Register(bus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	sse.NewSubscriber(hub, bus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)
}
