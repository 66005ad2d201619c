package leaderboard

import "time"

// ============================================================================
// Redis Keys & Timeouts
// ============================================================================

const (
	// DefaultKey is the sorted set holding total XP per user
	DefaultKey = "pomoquest:leaderboard:total_xp"

	DialTimeout = 5 * time.Second
	PingTimeout = 5 * time.Second
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgRedisAddrRequired = "redis address is required"
	ErrMsgRedisPing         = "redis ping"
	ErrMsgUpdateScore       = "failed to update leaderboard score"
	ErrMsgRemoveUser        = "failed to remove user from leaderboard"
	ErrMsgQueryTop          = "failed to query leaderboard"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgConnected = "Connected to Redis leaderboard"
)
