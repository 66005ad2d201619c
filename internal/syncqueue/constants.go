package syncqueue

// ============================================================================
// Error Messages
// ============================================================================

// MaxFailedOperations caps the parked rejected operations; the oldest go first
const MaxFailedOperations = 50

const (
	ErrMsgLoadStateFailed  = "failed to load progression state: %w"
	ErrMsgLoadQueueFailed  = "failed to load queued operations: %w"
	ErrMsgPersistFailed    = "failed to persist queue: %w"
	ErrMsgUserIDRequired   = "%w: queue needs a user id"
	ErrMsgInvalidOperation = "%w: queued operation %s: %v"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgQueueOpened       = "Sync queue opened"
	LogMsgRecoveredInFlight = "Reset interrupted operations to pending"
	LogMsgEnqueued          = "Session enqueued"
	LogMsgFlushSkipped      = "Flush already in progress"
	LogMsgOperationAcked    = "Operation acknowledged"
	LogMsgOperationRetry    = "Operation failed, will retry"
	LogMsgOperationDropped  = "Dropping operation rejected by server"
	LogMsgFlushFailed       = "Background flush failed"
	LogMsgFlushDone         = "Flush finished"
)
