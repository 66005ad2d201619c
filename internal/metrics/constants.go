package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Progression metric names
const (
	MetricNameSessionsCompleted    = "sessions_completed_total"
	MetricNameSessionMinutes       = "session_minutes_total"
	MetricNameLevelUps             = "level_ups_total"
	MetricNameAchievementsUnlocked = "achievements_unlocked_total"
	MetricNameEvolutions           = "character_evolutions_total"
	MetricNameIdempotentReplays    = "session_idempotent_replays_total"
)

// Sync queue metric names
const (
	MetricNameSyncOperations = "sync_operations_total"
	MetricNameSyncQueueDepth = "sync_queue_depth"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Progression metric help text
const (
	HelpTextSessionsCompleted    = "Total number of completed sessions by type"
	HelpTextSessionMinutes       = "Total session minutes by type"
	HelpTextLevelUps             = "Total number of level ups"
	HelpTextAchievementsUnlocked = "Total number of achievements unlocked"
	HelpTextEvolutions           = "Total number of character evolutions by new type"
	HelpTextIdempotentReplays    = "Total number of createSession calls answered from a stored result"
)

// Sync queue metric help text
const (
	HelpTextSyncOperations = "Queued operations settled by outcome"
	HelpTextSyncQueueDepth = "Operations waiting in the local sync queue"
)

// ============================================================================
// Metric Label Names and Values
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod      = "method"
	LabelPath        = "path"
	LabelStatus      = "status"
	LabelType        = "type"
	LabelAchievement = "achievement"
	LabelOutcome     = "outcome"
)

// Sync outcomes
const (
	OutcomeAcknowledged = "acknowledged"
	OutcomeRetry        = "retry"
	OutcomeDropped      = "dropped"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadInvalid = "Event payload has unexpected shape"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
