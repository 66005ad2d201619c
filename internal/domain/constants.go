package domain

// DemoUserID is the fixed identity used by demo mode and fixtures
const DemoUserID = "demo-user"

// Session limits
const (
	MaxSessionMinutes = 1440
	MaxTeamSize       = 5
)

// Ability IDs
const (
	AbilityXPBoost10          = "xp_boost_10"
	AbilityXPBoost20          = "xp_boost_20"
	AbilityAchievementBoost25 = "achievement_boost_25"
	AbilityStreakShield       = "streak_shield"
)

// Storage key prefixes for the local key-value store
const (
	KeyPrefixProgression = "progression:"
	KeyPrefixQueue       = "queue:"
	KeyPrefixFailed      = "failed:"
	KeyPrefixSettings    = "settings:"
)

// ProgressionKey returns the local storage key for a user's progression state
func ProgressionKey(userID string) string { return KeyPrefixProgression + userID }

// QueueKey returns the local storage key for a user's pending operations
func QueueKey(userID string) string { return KeyPrefixQueue + userID }

// FailedKey returns the local storage key for operations the server rejected
func FailedKey(userID string) string { return KeyPrefixFailed + userID }

// SettingsKey returns the local storage key for a user's timer settings
func SettingsKey(userID string) string { return KeyPrefixSettings + userID }
