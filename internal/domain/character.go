package domain

// CharacterType is one step of a character's evolution path
type CharacterType string

const (
	CharacterFocused    CharacterType = "focused"
	CharacterConsistent CharacterType = "consistent"
	CharacterBalanced   CharacterType = "balanced"
)

// StartingCharacterType is the first entry of every new evolution path
const StartingCharacterType = CharacterBalanced

// Character is a concrete catalog entry resolved from (path, level)
type Character struct {
	Key              string   `json:"key" yaml:"key"`
	Name             string   `json:"name" yaml:"name"`
	Description      string   `json:"description,omitempty" yaml:"description"`
	Art              string   `json:"art,omitempty" yaml:"art"`
	AbilityIDs       []string `json:"ability_ids" yaml:"abilities"`
	NextEvolutionExp *int     `json:"next_evolution_exp,omitempty" yaml:"next_evolution_exp"`
}

// Ability is a character perk the user can toggle on
type Ability struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Kind        AbilityKind `json:"kind"`
	Percent     int         `json:"percent,omitempty"`
	Description string      `json:"description"`
}

// AbilityKind selects which multiplier an ability feeds
type AbilityKind string

const (
	AbilityXPBoost          AbilityKind = "xp_boost"
	AbilityAchievementBoost AbilityKind = "achievement_boost"
	AbilityStreakProtection AbilityKind = "streak_protection"
)
