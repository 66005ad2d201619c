package progression

import (
	"embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/osse101/pomoquest/internal/domain"
)

//go:embed achievements.yaml
var achievementFS embed.FS

// Achievement is one row of the rule table
type Achievement struct {
	ID            string `yaml:"id" json:"id"`
	Name          string `yaml:"name" json:"name"`
	Category      string `yaml:"category" json:"category"`
	RequiredValue int    `yaml:"required_value" json:"required_value"`
	XPReward      int    `yaml:"xp_reward" json:"xp_reward"`
}

type achievementFile struct {
	Achievements []Achievement `yaml:"achievements"`
}

// Stats is the snapshot the evaluator compares rules against
type Stats struct {
	FocusSessions   int
	TotalSessions   int
	Streak          int
	TotalMinutes    int
	Level           int
	TotalActiveDays int
	BestGameScore   int
	GamePlays       int
	DistinctGames   int
	UnlockedCount   int
	PathLength      int
	DistinctTypes   int
	TeamSessions    int
	TeamMinutes     int
}

// StatsFromState builds evaluator input from a progression state.
func StatsFromState(s *domain.ProgressionState) Stats {
	types := make(map[domain.CharacterType]struct{}, len(s.CharacterEvolutionPath))
	for _, t := range s.CharacterEvolutionPath {
		types[t] = struct{}{}
	}
	return Stats{
		FocusSessions:   s.FocusSessions,
		TotalSessions:   s.TotalSessions,
		Streak:          s.Streak,
		TotalMinutes:    s.TotalMinutes,
		Level:           s.Level,
		TotalActiveDays: s.TotalActiveDays,
		BestGameScore:   s.Games.BestScore,
		GamePlays:       s.Games.PlayCount,
		DistinctGames:   len(s.Games.PlayedGames),
		UnlockedCount:   len(s.UnlockedAchievementIDs),
		PathLength:      len(s.CharacterEvolutionPath),
		DistinctTypes:   len(types),
		TeamSessions:    s.TeamSessions,
		TeamMinutes:     s.TeamMinutes,
	}
}

type statFunc func(Stats) int

var categoryStats = map[string]statFunc{
	CategorySessions:      func(s Stats) int { return s.TotalSessions },
	CategoryFocusSessions: func(s Stats) int { return s.FocusSessions },
	CategoryStreak:        func(s Stats) int { return s.Streak },
	CategoryTotalMinutes:  func(s Stats) int { return s.TotalMinutes },
	CategoryLevel:         func(s Stats) int { return s.Level },
	CategoryTotalDays:     func(s Stats) int { return s.TotalActiveDays },
	CategoryGameScore:     func(s Stats) int { return s.BestGameScore },
	CategoryTeamSessions:  func(s Stats) int { return s.TeamSessions },
	CategoryTeamMinutes:   func(s Stats) int { return s.TeamMinutes },
}

// specialActions maps bespoke achievement IDs to the stat they measure
var specialActions = map[string]statFunc{
	AchievementCollector5:     func(s Stats) int { return s.UnlockedCount },
	AchievementCollector15:    func(s Stats) int { return s.UnlockedCount },
	AchievementGameExplorer:   func(s Stats) int { return s.DistinctGames },
	AchievementGamer10:        func(s Stats) int { return s.GamePlays },
	AchievementFirstEvolution: func(s Stats) int { return s.PathLength },
	AchievementFullEvolution:  func(s Stats) int { return s.PathLength },
	AchievementDiversePath:    func(s Stats) int { return s.DistinctTypes },
}

// timeRules are checked against local wall-clock time of a completed session
var timeRules = map[string]func(time.Time) bool{
	AchievementNightOwl: func(t time.Time) bool {
		return t.Hour() >= 22 || t.Hour() < 4
	},
	AchievementEarlyBird: func(t time.Time) bool {
		return t.Hour() >= 5 && t.Hour() < 7
	},
	AchievementLunchFocus: func(t time.Time) bool {
		return t.Hour() == 12
	},
	AchievementWeekendWarrior: func(t time.Time) bool {
		return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
	},
}

// AchievementTable is the ordered, validated rule table
type AchievementTable struct {
	rules []Achievement
	byID  map[string]Achievement
}

// LoadAchievementTable parses the embedded rule table.
func LoadAchievementTable() (*AchievementTable, error) {
	data, err := achievementFS.ReadFile("achievements.yaml")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAchievementsFailed, err)
	}
	return ParseAchievementTable(data)
}

// ParseAchievementTable parses and validates a YAML rule table.
func ParseAchievementTable(data []byte) (*AchievementTable, error) {
	if err := tableValidator.ValidateYAML(data, SchemaAchievements); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAchievementsFailed, err)
	}
	var file achievementFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAchievementsFailed, err)
	}

	t := &AchievementTable{
		rules: file.Achievements,
		byID:  make(map[string]Achievement, len(file.Achievements)),
	}
	for _, rule := range file.Achievements {
		if _, dup := t.byID[rule.ID]; dup {
			return nil, fmt.Errorf(ErrMsgDuplicateAchievement, rule.ID)
		}
		switch rule.Category {
		case CategorySpecialAction:
			if _, ok := specialActions[rule.ID]; !ok {
				return nil, fmt.Errorf(ErrMsgMissingPredicate, rule.ID)
			}
		case CategoryTimeOfDay:
			if _, ok := timeRules[rule.ID]; !ok {
				return nil, fmt.Errorf(ErrMsgMissingPredicate, rule.ID)
			}
		default:
			if _, ok := categoryStats[rule.Category]; !ok {
				return nil, fmt.Errorf(ErrMsgUnknownCategory, rule.ID, rule.Category)
			}
		}
		t.byID[rule.ID] = rule
	}
	return t, nil
}

// Get returns the rule with the given ID.
func (t *AchievementTable) Get(id string) (Achievement, bool) {
	a, ok := t.byID[id]
	return a, ok
}

// All returns the rules in table order.
func (t *AchievementTable) All() []Achievement {
	out := make([]Achievement, len(t.rules))
	copy(out, t.rules)
	return out
}

// Evaluate returns stat-based rules newly satisfied by stats, in table order.
// Wall-clock and team rules are excluded; see EvaluateTime and EvaluateTeam.
func (t *AchievementTable) Evaluate(stats Stats, unlocked func(string) bool) []Achievement {
	var out []Achievement
	for _, rule := range t.rules {
		if rule.Category == CategoryTimeOfDay || isTeamCategory(rule.Category) {
			continue
		}
		if unlocked(rule.ID) {
			continue
		}
		if statFor(rule, stats) >= rule.RequiredValue {
			out = append(out, rule)
		}
	}
	return out
}

// EvaluateTime returns wall-clock rules satisfied by a session completed at local.
func (t *AchievementTable) EvaluateTime(local time.Time, unlocked func(string) bool) []Achievement {
	var out []Achievement
	for _, rule := range t.rules {
		if rule.Category != CategoryTimeOfDay || unlocked(rule.ID) {
			continue
		}
		if timeRules[rule.ID](local) {
			out = append(out, rule)
		}
	}
	return out
}

// EvaluateTeam returns team rules newly satisfied by stats.
func (t *AchievementTable) EvaluateTeam(stats Stats, unlocked func(string) bool) []Achievement {
	var out []Achievement
	for _, rule := range t.rules {
		if !isTeamCategory(rule.Category) || unlocked(rule.ID) {
			continue
		}
		if statFor(rule, stats) >= rule.RequiredValue {
			out = append(out, rule)
		}
	}
	return out
}

func statFor(rule Achievement, stats Stats) int {
	if rule.Category == CategorySpecialAction {
		return specialActions[rule.ID](stats)
	}
	return categoryStats[rule.Category](stats)
}

func isTeamCategory(category string) bool {
	return category == CategoryTeamSessions || category == CategoryTeamMinutes
}
