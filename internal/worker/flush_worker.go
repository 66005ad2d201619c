package worker

import (
	"context"
	"time"

	"github.com/osse101/pomoquest/internal/logger"
	"github.com/osse101/pomoquest/internal/syncqueue"
)

// Flusher drains a sync queue
type Flusher interface {
	Flush(ctx context.Context) (syncqueue.FlushReport, error)
}

// FlushWorker flushes the sync queue on a fixed interval, the periodic
// trigger alongside connectivity and foreground events.
type FlushWorker struct {
	BaseWorker
	flusher  Flusher
	interval time.Duration
}

// NewFlushWorker creates a FlushWorker
func NewFlushWorker(flusher Flusher, interval time.Duration) *FlushWorker {
	w := &FlushWorker{flusher: flusher, interval: interval}
	w.init()
	return w
}

// Start begins ticking until ctx is cancelled or Shutdown is called
func (w *FlushWorker) Start(ctx context.Context) {
	logger.FromContext(ctx).Info(LogMsgFlushWorkerStarted, "interval", w.interval)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				w.flush(ctx)
			case <-ctx.Done():
				return
			case <-w.shutdown:
				return
			}
		}
	}()
}

func (w *FlushWorker) flush(ctx context.Context) {
	log := logger.FromContext(ctx)
	report, err := w.flusher.Flush(ctx)
	if err != nil {
		log.Error(LogMsgFlushFailed, "error", err)
		return
	}
	if report.Skipped {
		return
	}
	log.Debug(LogMsgFlushCompleted,
		"acknowledged", report.Acknowledged,
		"dropped", report.Dropped,
		"remaining", report.Remaining)
}

// Shutdown stops the ticker and waits for an in-progress flush
func (w *FlushWorker) Shutdown(ctx context.Context) error {
	return w.shutdownInternal(ctx, FlushWorkerName)
}
