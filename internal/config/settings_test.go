package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pomoquest/internal/domain"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestDefaultSettings_Valid(t *testing.T) {
	s := DefaultSettings()
	require.NoError(t, s.Validate())
	assert.Equal(t, 25, s.FocusMinutes)
	assert.Equal(t, 4, s.SessionsBeforeLongBreak)
}

func TestSettingsMerge(t *testing.T) {
	base := DefaultSettings()

	t.Run("applies only set fields", func(t *testing.T) {
		merged, err := base.Merge(SettingsPatch{
			FocusMinutes:    intPtr(50),
			AutoStartBreaks: boolPtr(true),
			Sound:           boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, 50, merged.FocusMinutes)
		assert.True(t, merged.AutoStartBreaks)
		assert.False(t, merged.Sound)
		assert.Equal(t, base.ShortBreakMinutes, merged.ShortBreakMinutes)
		assert.True(t, merged.Vibration)
	})

	t.Run("empty patch is identity", func(t *testing.T) {
		merged, err := base.Merge(SettingsPatch{})
		require.NoError(t, err)
		assert.Equal(t, base, merged)
	})

	tests := []struct {
		name  string
		patch SettingsPatch
	}{
		{"focus too long", SettingsPatch{FocusMinutes: intPtr(121)}},
		{"focus zero", SettingsPatch{FocusMinutes: intPtr(0)}},
		{"short break too long", SettingsPatch{ShortBreakMinutes: intPtr(31)}},
		{"long break too long", SettingsPatch{LongBreakMinutes: intPtr(61)}},
		{"too many sessions before long break", SettingsPatch{SessionsBeforeLongBreak: intPtr(13)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, err := base.Merge(tt.patch)
			require.ErrorIs(t, err, domain.ErrInvalidSettings)
			assert.Equal(t, base, merged, "rejected merge returns the original settings")
		})
	}

	t.Run("accepts range bounds", func(t *testing.T) {
		merged, err := base.Merge(SettingsPatch{FocusMinutes: intPtr(120), ShortBreakMinutes: intPtr(1)})
		require.NoError(t, err)
		assert.Equal(t, 120, merged.FocusMinutes)
		assert.Equal(t, 1, merged.ShortBreakMinutes)
	})
}

func TestSettingsDurationFor(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 25, s.DurationFor(domain.SessionFocus))
	assert.Equal(t, 5, s.DurationFor(domain.SessionShortBreak))
	assert.Equal(t, 15, s.DurationFor(domain.SessionLongBreak))
}
