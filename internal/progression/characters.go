package progression

import (
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/osse101/pomoquest/internal/domain"
)

//go:embed characters.yaml
var characterFS embed.FS

type characterFile struct {
	Default    *domain.Character  `yaml:"default"`
	Characters []domain.Character `yaml:"characters"`
}

// CharacterCatalog resolves concrete characters from an evolution path
type CharacterCatalog struct {
	byKey    map[string]domain.Character
	fallback domain.Character
}

// LoadCharacterCatalog parses the embedded character catalog.
func LoadCharacterCatalog() (*CharacterCatalog, error) {
	data, err := characterFS.ReadFile("characters.yaml")
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCharactersFailed, err)
	}
	return ParseCharacterCatalog(data)
}

// ParseCharacterCatalog parses a YAML character catalog.
func ParseCharacterCatalog(data []byte) (*CharacterCatalog, error) {
	if err := tableValidator.ValidateYAML(data, SchemaCharacters); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCharactersFailed, err)
	}
	var file characterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf(ErrMsgLoadCharactersFailed, err)
	}
	if file.Default == nil {
		return nil, fmt.Errorf(ErrMsgLoadCharactersFailed, errors.New(ErrMsgMissingDefaultChar))
	}
	c := &CharacterCatalog{
		byKey:    make(map[string]domain.Character, len(file.Characters)),
		fallback: *file.Default,
	}
	for _, ch := range file.Characters {
		c.byKey[ch.Key] = ch
	}
	return c, nil
}

// CharacterKey builds the catalog key for a path at a level.
func CharacterKey(path []domain.CharacterType, level int) string {
	parts := make([]string, len(path))
	for i, t := range path {
		parts[i] = string(t)
	}
	return strings.Join(parts, "-") + "_" + strconv.Itoa(level)
}

// Resolve returns the character for (path, level). Unknown paths fall back to
// the last type repeated level times, then to the default character.
// NextEvolutionExp is always filled for non-terminal levels.
func (c *CharacterCatalog) Resolve(path []domain.CharacterType, level int) domain.Character {
	ch, ok := c.byKey[CharacterKey(path, level)]
	if !ok && len(path) > 0 {
		repeated := make([]domain.CharacterType, level)
		for i := range repeated {
			repeated[i] = path[len(path)-1]
		}
		ch, ok = c.byKey[CharacterKey(repeated, level)]
	}
	if !ok {
		ch = c.fallback
	}
	if ch.AbilityIDs == nil {
		ch.AbilityIDs = []string{}
	}
	if level >= MaxCharacterLevel {
		ch.NextEvolutionExp = nil
	} else if ch.NextEvolutionExp == nil {
		threshold := defaultEvolutionThresholds[level]
		ch.NextEvolutionExp = &threshold
	}
	return ch
}

// ClassifierStats are the counters the evolution classifier compares
type ClassifierStats struct {
	TotalSessions   int
	Streak          int
	TotalActiveDays int
}

// Classify picks the character type for the next evolution step.
func Classify(stats ClassifierStats) domain.CharacterType {
	sessions, streak, days := stats.TotalSessions, stats.Streak, stats.TotalActiveDays
	if sessions > streak*3 && sessions > days*2 {
		return domain.CharacterFocused
	}
	// streak > sessions/3, kept in integers
	if streak*3 > sessions && streak > days {
		return domain.CharacterConsistent
	}
	return domain.CharacterBalanced
}

// EvolveResult is the outcome of an evolution attempt
type EvolveResult struct {
	Path    []domain.CharacterType
	Level   int
	Exp     int
	Evolved bool
	NewType domain.CharacterType
}

// TryEvolve advances the character one level when exp reaches the threshold
// of the current catalog entry. The input path is not modified.
func (c *CharacterCatalog) TryEvolve(path []domain.CharacterType, level, exp int, stats ClassifierStats) EvolveResult {
	current := c.Resolve(path, level)
	if current.NextEvolutionExp == nil || exp < *current.NextEvolutionExp {
		return EvolveResult{Path: path, Level: level, Exp: exp}
	}

	newType := Classify(stats)
	newPath := make([]domain.CharacterType, 0, len(path)+1)
	newPath = append(newPath, path...)
	newPath = append(newPath, newType)
	return EvolveResult{
		Path:    newPath,
		Level:   level + 1,
		Exp:     0,
		Evolved: true,
		NewType: newType,
	}
}
