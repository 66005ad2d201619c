package config

import "time"

// ============================================================================
// Server Defaults
// ============================================================================

const (
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultServiceName = "pomoquest"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultIdempotencyCacheSize = 10000
	DefaultIdempotencyCacheTTL  = 24 * time.Hour
	DefaultWorkerPoolSize       = 4
	DefaultShutdownTimeout      = 15 * time.Second
	DefaultMaxBodyBytes         = 1 << 20

	DefaultEventMaxRetries     = 3
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"
)

// ============================================================================
// Client Defaults
// ============================================================================

const (
	DefaultClientDBPath      = "pomoquest.db"
	DefaultServerURL         = "http://localhost:8080"
	DefaultRequestTimeout    = 10 * time.Second
	DefaultFlushInterval     = 30 * time.Second
	DefaultClientLogLevel    = "warn"
	DefaultClientServiceName = "pomoctl"
)

// ============================================================================
// Timer Settings Defaults
// ============================================================================

const (
	DefaultFocusMinutes            = 25
	DefaultShortBreakMinutes       = 5
	DefaultLongBreakMinutes        = 15
	DefaultSessionsBeforeLongBreak = 4
)
