package progression

// ============================================================================
// XP Formula
// ============================================================================

// BaseSessionXP is awarded for every completed session before bonuses
const BaseSessionXP = 20

// MinutesPerBonusStep and XPPerBonusStep define the duration bonus:
// every full 5 minutes adds 5 XP
const (
	MinutesPerBonusStep = 5
	XPPerBonusStep      = 5
)

// FocusMultiplier scales XP for focus sessions only
const FocusMultiplier = 1.2

// teamMultipliers is indexed by team size; sizes above the table use the last entry
var teamMultipliers = []float64{1.0, 1.0, 1.2, 1.3, 1.4, 1.5}

// ============================================================================
// Level Thresholds
// ============================================================================

const (
	// FixedThresholdMaxLevel is the last level using the linear 100-step table
	FixedThresholdMaxLevel = 20
	// FixedThresholdStep is the XP step per level for levels 1..20
	FixedThresholdStep = 100
	// HighLevelThresholdBase is the threshold at level 20, used above it
	HighLevelThresholdBase = 2000
	// HighLevelThresholdStep is added per level above 20
	HighLevelThresholdStep = 200
)

// ============================================================================
// Streak
// ============================================================================

// StreakProtectionCooldownDays is how long streak_shield recharges after use
const StreakProtectionCooldownDays = 7

// protectedGapDays is the only gap streak protection covers (one missed day)
const protectedGapDays = 2

// ============================================================================
// Character Evolution
// ============================================================================

// MaxCharacterLevel is terminal; no evolution past it
const MaxCharacterLevel = 5

// CharacterExpDivisor converts session minutes to evolution exp
const CharacterExpDivisor = 2

// defaultEvolutionThresholds is used when a catalog entry has no override
var defaultEvolutionThresholds = map[int]int{
	1: 30,
	2: 60,
	3: 120,
	4: 240,
}

// ============================================================================
// Achievement Categories
// ============================================================================

const (
	CategorySessions      = "sessions"
	CategoryFocusSessions = "focusSessions"
	CategoryStreak        = "streak"
	CategoryTotalMinutes  = "totalMinutes"
	CategoryLevel         = "level"
	CategoryTotalDays     = "totalDays"
	CategoryGameScore     = "gameScore"
	CategorySpecialAction = "specialAction"
	CategoryTimeOfDay     = "timeOfDay"
	CategoryTeamSessions  = "teamSessions"
	CategoryTeamMinutes   = "teamMinutes"
)

// Achievement IDs with bespoke predicates
const (
	AchievementCollector5     = "collector_5"
	AchievementCollector15    = "collector_15"
	AchievementGameExplorer   = "game_explorer"
	AchievementGamer10        = "gamer_10"
	AchievementFirstEvolution = "first_evolution"
	AchievementFullEvolution  = "full_evolution"
	AchievementDiversePath    = "diverse_path"

	AchievementNightOwl       = "night_owl"
	AchievementEarlyBird      = "early_bird"
	AchievementLunchFocus     = "lunch_focus"
	AchievementWeekendWarrior = "weekend_warrior"
)

// ============================================================================
// Error Messages
// ============================================================================

const (
	ErrMsgLoadAchievementsFailed = "failed to load achievement table: %w"
	ErrMsgLoadCharactersFailed   = "failed to load character catalog: %w"
	ErrMsgDuplicateAchievement   = "duplicate achievement id %q"
	ErrMsgUnknownCategory        = "achievement %q has unknown category %q"
	ErrMsgMissingPredicate       = "achievement %q has no predicate"
	ErrMsgMissingDefaultChar     = "character catalog has no default entry"
	ErrMsgInvalidGamePlay        = "%w: game id is required"
)

// Schema paths inside the embedded schema file system
const (
	SchemaAchievements = "schemas/achievements.schema.json"
	SchemaCharacters   = "schemas/characters.schema.json"
)
