package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/pomoquest/internal/config"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand(testConfig(t, ""))
	require.NotNil(t, cmd)
	assert.Equal(t, "pomoctl", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(testConfig(t, ""))
	commands := [][]string{
		{"complete"}, {"flush"}, {"status"},
		{"settings", "show"}, {"settings", "set"},
		{"ability", "enable"}, {"ability", "disable"},
		{"reset"}, {"game"}, {"leaderboard"}, {"watch"},
	}

	for _, path := range commands {
		t.Run(path[len(path)-1], func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.Equal(t, path[len(path)-1], sub.Name())
		})
	}
}

func TestGlobalFlagsDefaultFromConfig(t *testing.T) {
	cfg := &config.ClientConfig{
		DBPath:    "/tmp/pomo.db",
		ServerURL: "http://pomo.example",
		UserID:    "alice",
		Demo:      true,
	}
	cmd := NewRootCommand(cfg)

	flags := map[string]string{
		"db":      "/tmp/pomo.db",
		"server":  "http://pomo.example",
		"user":    "alice",
		"demo":    "true",
		"offline": "false",
		"format":  FormatText,
	}
	for name, want := range flags {
		f := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, want, f.DefValue, name)
	}
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitUsage, GetExitCode(NewExitError(ExitUsage, "bad flag")))

	wrapped := WrapExitError(ExitUsage, "outer", errors.New("inner"))
	assert.Equal(t, "outer: inner", wrapped.Error())
	assert.Equal(t, "inner", errors.Unwrap(wrapped).Error())
}
