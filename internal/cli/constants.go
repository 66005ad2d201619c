package cli

// Exit codes for pomoctl
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ValidFormats lists the accepted --format values
var ValidFormats = []string{FormatText, FormatJSON}

const (
	// DefaultLeaderboardLimit is the entry count asked for when --limit is unset
	DefaultLeaderboardLimit = 10
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgInvalidFormat   = "invalid format %q: must be one of %v"
	ErrMsgUserRequired    = "a user is required: pass --user, set POMO_USER_ID or use --demo"
	ErrMsgLoadTimezone    = "load timezone"
	ErrMsgOpenEngine      = "load progression rules"
	ErrMsgOpenStore       = "open local store"
	ErrMsgOpenQueue       = "open sync queue"
	ErrMsgInvalidSession  = "invalid session"
	ErrMsgCompleteFailed  = "record session"
	ErrMsgFlushFailed     = "flush queue"
	ErrMsgStatusFailed    = "read status"
	ErrMsgSettingsLoad    = "load settings"
	ErrMsgSettingsSave    = "save settings"
	ErrMsgInvalidSettings = "invalid settings"
	ErrMsgAbilityFailed   = "toggle ability"
	ErrMsgResetFailed     = "reset progression"
	ErrMsgResetNeedsYes   = "reset discards local progress and queued sessions; re-run with --yes"
	ErrMsgGameFailed      = "record game"
	ErrMsgLeaderboard     = "fetch leaderboard"
	ErrMsgWatchFailed     = "watch events"
	ErrMsgOfflineOnly     = "this command needs the server; drop --offline"
)

// ============================================================================
// Output Messages
// ============================================================================

const (
	MsgLevelUp           = "Level up! %d -> %d\n"
	MsgAchievement       = "Achievement unlocked: %s (+%d XP)\n"
	MsgEvolved           = "Your character evolved into %s, %s\n"
	MsgWarning           = "warning: %s: %v\n"
	MsgRemoteSkipped     = "offline: change kept locally only"
	MsgRemoteAbility     = "server ability toggle failed"
	MsgRemoteReset       = "server reset failed"
	MsgRemoteGame        = "server game report failed"
	MsgFlushAfterSession = "sync after session failed"
	MsgWatchStopped      = "Stopped watching."
)

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgStoreOpened = "Local store opened"
	LogMsgWatchEvent  = "Event received"
)
