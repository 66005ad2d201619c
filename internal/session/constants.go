package session

// ============================================================================
// Limits
// ============================================================================

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100

	// replayKeySeparator joins user and operation IDs in the replay cache
	replayKeySeparator = "/"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgOperationIDRequired = "%w: operation_id is required"
	ErrMsgInvalidAmount       = "%w: amount must be positive, got %d"
	ErrMsgLoadStateFailed     = "failed to load progression state: %w"
	ErrMsgSaveStateFailed     = "failed to save progression state: %w"
	ErrMsgLookupOpFailed      = "failed to look up operation %s: %w"
	ErrMsgRecordOpFailed      = "failed to record operation %s: %w"
	ErrMsgLeaderboardFailed   = "failed to load leaderboard: %w"
	ErrMsgUpdateScoreFailed   = "failed to update leaderboard score for %s: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgSessionApplied       = "Session applied"
	LogMsgSessionReplayed      = "Session replayed from stored result"
	LogMsgPublishFailed        = "Failed to publish progression event"
	LogMsgLeaderboardFailed    = "Failed to update leaderboard"
	LogMsgLeaderboardQueueFull = "Worker queue full, updating leaderboard inline"
	LogMsgProgressionReset     = "Progression reset"
	LogMsgXPReduced            = "XP reduced"
	LogMsgAbilityToggled       = "Ability toggled"
	LogMsgGamePlayed           = "Game play recorded"
)
