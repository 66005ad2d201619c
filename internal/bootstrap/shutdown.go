package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/pomoquest/internal/event"
	"github.com/osse101/pomoquest/internal/server"
	"github.com/osse101/pomoquest/internal/sse"
	"github.com/osse101/pomoquest/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	WorkerPool         *worker.Pool
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Repositories       *Repositories
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Worker pool (finish queued leaderboard updates)
// 3. SSE hub (disconnect streams)
// 4. Event publisher (flush pending retries to the dead-letter file)
// 5. Leaderboard connection
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if c.Server != nil {
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.WorkerPool != nil {
		c.WorkerPool.Stop()
	}

	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Repositories != nil {
		if err := c.Repositories.Close(); err != nil {
			slog.Error(LogMsgLeaderboardCloseFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
