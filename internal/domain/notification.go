package domain

// NotificationType names a user-facing progression event
type NotificationType string

const (
	NotificationLevelUp             NotificationType = "levelUp"
	NotificationAchievementUnlocked NotificationType = "achievementUnlocked"
	NotificationCharacterEvolved    NotificationType = "characterEvolved"
)

// Notification is pushed to the UI layer for toasts and modals.
// Exactly one of the payload pointers is set, matching Type.
type Notification struct {
	Type        NotificationType         `json:"type"`
	UserID      string                   `json:"user_id"`
	LevelUp     *LevelUpPayload          `json:"level_up,omitempty"`
	Achievement *AchievementPayload      `json:"achievement,omitempty"`
	Evolution   *CharacterEvolvedPayload `json:"evolution,omitempty"`
}

// LevelUpPayload describes a level change
type LevelUpPayload struct {
	OldLevel     int `json:"old_level"`
	NewLevel     int `json:"new_level"`
	LevelsGained int `json:"levels_gained"`
}

// AchievementPayload describes a newly unlocked achievement
type AchievementPayload struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	XPReward int    `json:"xp_reward"`
}

// CharacterEvolvedPayload describes a character evolution
type CharacterEvolvedPayload struct {
	OldLevel      int             `json:"old_level"`
	NewLevel      int             `json:"new_level"`
	NewType       CharacterType   `json:"new_type"`
	Path          []CharacterType `json:"path"`
	CharacterKey  string          `json:"character_key"`
	CharacterName string          `json:"character_name"`
	Title         string          `json:"title"`
}
