package progression

import (
	"slices"

	"github.com/osse101/pomoquest/internal/domain"
)

var abilities = map[string]domain.Ability{
	domain.AbilityXPBoost10: {
		ID:          domain.AbilityXPBoost10,
		Name:        "Focus Fuel",
		Kind:        domain.AbilityXPBoost,
		Percent:     10,
		Description: "+10% XP from sessions",
	},
	domain.AbilityXPBoost20: {
		ID:          domain.AbilityXPBoost20,
		Name:        "Overdrive",
		Kind:        domain.AbilityXPBoost,
		Percent:     20,
		Description: "+20% XP from sessions",
	},
	domain.AbilityAchievementBoost25: {
		ID:          domain.AbilityAchievementBoost25,
		Name:        "Trophy Polish",
		Kind:        domain.AbilityAchievementBoost,
		Percent:     25,
		Description: "+25% XP from achievements",
	},
	domain.AbilityStreakShield: {
		ID:          domain.AbilityStreakShield,
		Name:        "Streak Shield",
		Kind:        domain.AbilityStreakProtection,
		Description: "Bridges one missed day, recharges after 7 days",
	},
}

// Ability returns the ability definition for id.
func Ability(id string) (domain.Ability, bool) {
	a, ok := abilities[id]
	return a, ok
}

// boostPercent sums the percentages of active abilities of kind
func boostPercent(active []string, kind domain.AbilityKind) int {
	total := 0
	for _, id := range active {
		if a, ok := abilities[id]; ok && a.Kind == kind {
			total += a.Percent
		}
	}
	return total
}

// hasActiveKind reports whether any active ability is of kind
func hasActiveKind(active []string, kind domain.AbilityKind) bool {
	for _, id := range active {
		if a, ok := abilities[id]; ok && a.Kind == kind {
			return true
		}
	}
	return false
}

// pruneAbilities keeps only active abilities the character grants
func pruneAbilities(active, granted []string) []string {
	out := make([]string, 0, len(active))
	for _, id := range active {
		if slices.Contains(granted, id) {
			out = append(out, id)
		}
	}
	return out
}
