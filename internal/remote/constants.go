package remote

import "time"

// DefaultTimeout bounds a single API call
const DefaultTimeout = 10 * time.Second

// Headers
const (
	HeaderAPIKey      = "X-API-Key"
	HeaderUserID      = "X-User-ID"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)

// API paths
const (
	PathSessions         = "/api/v1/sessions"
	PathProgression      = "/api/v1/progression"
	PathProgressionReset = "/api/v1/progression/reset"
	PathAbilities        = "/api/v1/abilities/"
	PathGamesPlayed      = "/api/v1/games/played"
	PathLeaderboard      = "/api/v1/leaderboard"
	PathEvents           = "/api/v1/events"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgMarshalFailed = "failed to marshal body: %w"
	ErrMsgRequestFailed = "failed to create request: %w"
	ErrMsgDecodeFailed  = "failed to decode response: %w"
	ErrMsgStatus        = "API returned status %d: %s"
	ErrMsgRejected      = "%w: status %d: %s"
)

// Event stream settings
const (
	HeaderAccept           = "Accept"
	ContentTypeEventStream = "text/event-stream"

	EventTypeKeepalive = "keepalive"
	EventTypeConnected = "connected"

	streamInitialBackoff    = time.Second
	streamBackoffMultiplier = 2
	streamMaxBackoff        = 30 * time.Second
	streamMaxLineBytes      = 64 * 1024
)

// Event stream errors and log messages
const (
	ErrMsgStreamStatus      = "event stream returned status %d"
	ErrMsgStreamDecode      = "failed to decode event %s: %w"
	LogMsgStreamConnected   = "Connected to event stream"
	LogMsgStreamLost        = "Event stream disconnected, reconnecting"
	LogMsgStreamHandlerFail = "Event handler failed"
)
