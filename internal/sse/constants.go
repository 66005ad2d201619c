package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types sent to clients. Notification events use the notification
// type name (levelUp, achievementUnlocked, characterEvolved).
const (
	EventTypeConnected        = "connected"
	EventTypeKeepalive        = "keepalive"
	EventTypeSessionCompleted = "sessionCompleted"
	EventTypeProgressionReset = "progressionReset"
)

// Log messages
const (
	LogMsgClientConnected      = "SSE client connected"
	LogMsgClientDisconnected   = "SSE client disconnected"
	LogMsgEventBroadcast       = "Broadcasting SSE event"
	LogMsgWriteError           = "Failed to write SSE event"
	LogMsgInvalidPayload       = "Invalid event payload for SSE"
	LogMsgSubscriberRegistered = "SSE subscriber registered for event types"
	LogMsgClientBufferFull     = "SSE client buffer full, dropping event"
)

// HTTP errors
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
	ErrMsgMissingUser          = "missing user identity"
)
