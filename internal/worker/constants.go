package worker

import "time"

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgPoolQueueFull   = "Worker pool queue full, job dropped"
)

// ============================================================================
// Log Messages - Lifecycle
// ============================================================================

const (
	LogMsgWorkerShuttingDown     = "Shutting down worker"
	LogMsgWorkerShutdownComplete = "Worker shutdown complete"
	LogMsgWorkerShutdownTimeout  = "Worker shutdown timeout"
)

// ============================================================================
// Log Messages - Flush Worker
// ============================================================================

const (
	LogMsgFlushWorkerStarted = "Periodic flush started"
	LogMsgFlushFailed        = "Periodic flush failed"
	LogMsgFlushCompleted     = "Periodic flush completed"
)

const (
	// DefaultJobTimeout bounds a single pool job
	DefaultJobTimeout = 30 * time.Second

	// DefaultQueueSize is the pool backlog before Enqueue starts refusing jobs
	DefaultQueueSize = 1024
)

// FlushWorkerName identifies the flush worker in logs
const FlushWorkerName = "flush worker"

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount      = 2
	TestQueueSize        = 10
	TestExpectedJobCount = 2
)
