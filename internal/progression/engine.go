package progression

import (
	"fmt"
	"slices"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/pomoquest/internal/domain"
)

// Engine is the progression rules engine. Every method is pure: it returns a
// new state and never mutates its input.
type Engine interface {
	// OnSessionCompleted applies one completed session to state
	OnSessionCompleted(state *domain.ProgressionState, event domain.SessionEvent) (*Outcome, error)
	// RecordGamePlayed records a mini-game play and evaluates game achievements
	RecordGamePlayed(state *domain.ProgressionState, gameID string, score int) (*Outcome, error)
	// ToggleAbility activates or deactivates an ability owned by the current character
	ToggleAbility(state *domain.ProgressionState, abilityID string, active bool) (*domain.ProgressionState, error)
	// ReduceXP removes XP for admin tooling, clamping at level 1 with 0 XP
	ReduceXP(state *domain.ProgressionState, amount int) *domain.ProgressionState
	// Reset returns a fresh state for userID
	Reset(userID string) (*domain.ProgressionState, error)

	Character(state *domain.ProgressionState) domain.Character
	Achievements() []Achievement
	Location() *time.Location
}

// Outcome is the result of applying an event to a state
type Outcome struct {
	State                *domain.ProgressionState
	Notifications        []domain.Notification
	XPEarned             int
	LeveledUp            bool
	UnlockedAchievements []string
}

type engine struct {
	achievements *AchievementTable
	characters   *CharacterCatalog
	loc          *time.Location
}

// NewEngine loads the embedded rule tables. Calendar days are computed in
// loc; nil means UTC.
func NewEngine(loc *time.Location) (Engine, error) {
	achievements, err := LoadAchievementTable()
	if err != nil {
		return nil, err
	}
	characters, err := LoadCharacterCatalog()
	if err != nil {
		return nil, err
	}
	return NewEngineWithTables(achievements, characters, loc), nil
}

// NewEngineWithTables builds an engine over explicit tables.
func NewEngineWithTables(achievements *AchievementTable, characters *CharacterCatalog, loc *time.Location) Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &engine{
		achievements: achievements,
		characters:   characters,
		loc:          loc,
	}
}

func (e *engine) Location() *time.Location { return e.loc }

func (e *engine) Achievements() []Achievement { return e.achievements.All() }

func (e *engine) Character(state *domain.ProgressionState) domain.Character {
	return e.characters.Resolve(state.CharacterEvolutionPath, state.CharacterLevel)
}

func (e *engine) OnSessionCompleted(state *domain.ProgressionState, event domain.SessionEvent) (*Outcome, error) {
	if state == nil {
		return nil, domain.ErrStateNotFound
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	next := state.Clone()
	a := &applier{engine: e, state: next, out: &Outcome{State: next}}
	minutes := event.DurationMinutes

	// 1. session XP
	a.addXP(SessionXP(event, boostPercent(next.ActiveAbilityIDs, domain.AbilityXPBoost)))

	// 2. streak and counters
	today := CalendarDate(event.OccurredAt, e.loc)
	hasProtection := hasActiveKind(next.ActiveAbilityIDs, domain.AbilityStreakProtection) &&
		protectionAvailable(next.StreakProtectionUsedOn, today)
	streak := UpdateStreak(next.LastActiveDate, next.Streak, today, hasProtection)
	next.Streak = streak.Streak
	if streak.NewDay {
		next.TotalActiveDays++
		next.LastActiveDate = &today
	}
	if streak.ProtectionUsed {
		usedOn := today
		next.StreakProtectionUsedOn = &usedOn
	}
	next.TotalSessions++
	next.TotalMinutes += minutes
	if event.SessionType == domain.SessionFocus {
		next.FocusSessions++
	}

	// 3. character evolution
	next.CharacterExp += minutes / CharacterExpDivisor
	a.tryEvolve()

	// 4. achievements, with at most one extra pass for reward-driven unlocks
	found := e.achievements.Evaluate(StatsFromState(next), next.HasAchievement)
	if event.SessionType == domain.SessionFocus {
		found = append(found, e.achievements.EvaluateTime(event.OccurredAt.In(e.loc), next.HasAchievement)...)
	}
	if a.unlock(found) > 0 {
		a.unlock(e.achievements.Evaluate(StatsFromState(next), next.HasAchievement))
	}

	// 5. team counters and team achievements
	if event.IsTeamSession {
		next.TeamSessions++
		next.TeamMinutes += minutes
		a.unlock(e.achievements.EvaluateTeam(StatsFromState(next), next.HasAchievement))
	}

	return a.out, nil
}

func (e *engine) RecordGamePlayed(state *domain.ProgressionState, gameID string, score int) (*Outcome, error) {
	if state == nil {
		return nil, domain.ErrStateNotFound
	}
	if gameID == "" {
		return nil, fmt.Errorf(ErrMsgInvalidGamePlay, domain.ErrInvalidInput)
	}

	next := state.Clone()
	a := &applier{engine: e, state: next, out: &Outcome{State: next}}

	next.Games.PlayCount++
	if score > next.Games.BestScore {
		next.Games.BestScore = score
	}
	if !slices.Contains(next.Games.PlayedGames, gameID) {
		next.Games.PlayedGames = append(next.Games.PlayedGames, gameID)
	}

	a.unlock(e.achievements.Evaluate(StatsFromState(next), next.HasAchievement))
	return a.out, nil
}

func (e *engine) ToggleAbility(state *domain.ProgressionState, abilityID string, active bool) (*domain.ProgressionState, error) {
	if state == nil {
		return nil, domain.ErrStateNotFound
	}
	if _, ok := abilities[abilityID]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAbility, abilityID)
	}

	next := state.Clone()
	if !active {
		next.ActiveAbilityIDs = slices.DeleteFunc(next.ActiveAbilityIDs, func(id string) bool { return id == abilityID })
		return next, nil
	}

	if !slices.Contains(e.Character(next).AbilityIDs, abilityID) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAbilityNotOwned, abilityID)
	}
	if !next.IsAbilityActive(abilityID) {
		next.ActiveAbilityIDs = append(next.ActiveAbilityIDs, abilityID)
	}
	return next, nil
}

func (e *engine) ReduceXP(state *domain.ProgressionState, amount int) *domain.ProgressionState {
	next := state.Clone()
	res := ReduceXP(next.Level, next.XP, amount)
	next.Level = res.Level
	next.XP = res.XP
	return next
}

func (e *engine) Reset(userID string) (*domain.ProgressionState, error) {
	return domain.NewProgressionState(userID)
}

// applier accumulates changes and notifications for one engine call
type applier struct {
	engine *engine
	state  *domain.ProgressionState
	out    *Outcome
}

func (a *applier) addXP(delta int) {
	if delta <= 0 {
		return
	}
	oldLevel := a.state.Level
	res := ApplyXP(a.state.Level, a.state.XP, delta)
	a.state.Level = res.Level
	a.state.XP = res.XP
	a.state.TotalXPEarned += int64(delta)
	a.out.XPEarned += delta

	if res.LeveledUp {
		a.out.LeveledUp = true
		a.notify(domain.Notification{
			Type: domain.NotificationLevelUp,
			LevelUp: &domain.LevelUpPayload{
				OldLevel:     oldLevel,
				NewLevel:     res.Level,
				LevelsGained: res.LevelsGained,
			},
		})
	}
}

// unlock grants rules in order and returns how many were newly unlocked
func (a *applier) unlock(rules []Achievement) int {
	percent := boostPercent(a.state.ActiveAbilityIDs, domain.AbilityAchievementBoost)
	count := 0
	for _, rule := range rules {
		if !a.state.UnlockAchievement(rule.ID) {
			continue
		}
		count++
		reward := boosted(rule.XPReward, percent)
		a.out.UnlockedAchievements = append(a.out.UnlockedAchievements, rule.ID)
		a.notify(domain.Notification{
			Type: domain.NotificationAchievementUnlocked,
			Achievement: &domain.AchievementPayload{
				ID:       rule.ID,
				Name:     rule.Name,
				XPReward: reward,
			},
		})
		a.addXP(reward)
	}
	return count
}

func (a *applier) tryEvolve() {
	s := a.state
	res := a.engine.characters.TryEvolve(s.CharacterEvolutionPath, s.CharacterLevel, s.CharacterExp, ClassifierStats{
		TotalSessions:   s.TotalSessions,
		Streak:          s.Streak,
		TotalActiveDays: s.TotalActiveDays,
	})
	if !res.Evolved {
		return
	}

	oldLevel := s.CharacterLevel
	s.CharacterEvolutionPath = res.Path
	s.CharacterLevel = res.Level
	s.CharacterExp = res.Exp

	ch := a.engine.Character(s)
	s.ActiveAbilityIDs = pruneAbilities(s.ActiveAbilityIDs, ch.AbilityIDs)

	a.notify(domain.Notification{
		Type: domain.NotificationCharacterEvolved,
		Evolution: &domain.CharacterEvolvedPayload{
			OldLevel:      oldLevel,
			NewLevel:      res.Level,
			NewType:       res.NewType,
			Path:          slices.Clone(res.Path),
			CharacterKey:  ch.Key,
			CharacterName: ch.Name,
			Title:         cases.Title(language.English).String(string(res.NewType)) + " Evolution",
		},
	})
}

func (a *applier) notify(n domain.Notification) {
	n.UserID = a.state.UserID
	a.out.Notifications = append(a.out.Notifications, n)
}
