package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/pomoquest/internal/domain"
)

var settingsValidator = validator.New(validator.WithRequiredStructEnabled())

// Settings are the user's timer preferences. They shape session durations
// but never enter progression math directly.
type Settings struct {
	FocusMinutes            int  `json:"focus_minutes" validate:"min=1,max=120"`
	ShortBreakMinutes       int  `json:"short_break_minutes" validate:"min=1,max=30"`
	LongBreakMinutes        int  `json:"long_break_minutes" validate:"min=1,max=60"`
	SessionsBeforeLongBreak int  `json:"sessions_before_long_break" validate:"min=1,max=12"`
	AutoStartBreaks         bool `json:"auto_start_breaks"`
	AutoStartFocus          bool `json:"auto_start_focus"`
	Sound                   bool `json:"sound"`
	Vibration               bool `json:"vibration"`
}

// SettingsPatch carries optional overrides; nil fields keep the current value
type SettingsPatch struct {
	FocusMinutes            *int  `json:"focus_minutes,omitempty"`
	ShortBreakMinutes       *int  `json:"short_break_minutes,omitempty"`
	LongBreakMinutes        *int  `json:"long_break_minutes,omitempty"`
	SessionsBeforeLongBreak *int  `json:"sessions_before_long_break,omitempty"`
	AutoStartBreaks         *bool `json:"auto_start_breaks,omitempty"`
	AutoStartFocus          *bool `json:"auto_start_focus,omitempty"`
	Sound                   *bool `json:"sound,omitempty"`
	Vibration               *bool `json:"vibration,omitempty"`
}

// DefaultSettings returns the classic 25/5/15 pomodoro setup
func DefaultSettings() Settings {
	return Settings{
		FocusMinutes:            DefaultFocusMinutes,
		ShortBreakMinutes:       DefaultShortBreakMinutes,
		LongBreakMinutes:        DefaultLongBreakMinutes,
		SessionsBeforeLongBreak: DefaultSessionsBeforeLongBreak,
		Sound:                   true,
		Vibration:               true,
	}
}

// Validate checks every field is within its allowed range
func (s Settings) Validate() error {
	if err := settingsValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidSettings, err)
	}
	return nil
}

// Merge applies the non-nil fields of patch and validates the result.
// The receiver is left unchanged on error.
func (s Settings) Merge(patch SettingsPatch) (Settings, error) {
	merged := s
	if patch.FocusMinutes != nil {
		merged.FocusMinutes = *patch.FocusMinutes
	}
	if patch.ShortBreakMinutes != nil {
		merged.ShortBreakMinutes = *patch.ShortBreakMinutes
	}
	if patch.LongBreakMinutes != nil {
		merged.LongBreakMinutes = *patch.LongBreakMinutes
	}
	if patch.SessionsBeforeLongBreak != nil {
		merged.SessionsBeforeLongBreak = *patch.SessionsBeforeLongBreak
	}
	if patch.AutoStartBreaks != nil {
		merged.AutoStartBreaks = *patch.AutoStartBreaks
	}
	if patch.AutoStartFocus != nil {
		merged.AutoStartFocus = *patch.AutoStartFocus
	}
	if patch.Sound != nil {
		merged.Sound = *patch.Sound
	}
	if patch.Vibration != nil {
		merged.Vibration = *patch.Vibration
	}

	if err := merged.Validate(); err != nil {
		return s, err
	}
	return merged, nil
}

// DurationFor returns the configured length of a session type
func (s Settings) DurationFor(t domain.SessionType) int {
	switch t {
	case domain.SessionShortBreak:
		return s.ShortBreakMinutes
	case domain.SessionLongBreak:
		return s.LongBreakMinutes
	default:
		return s.FocusMinutes
	}
}
