package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperVar = "POMO_TEST_HELPER_VAR"

// setHelperVar sets helperVar, or unsets it when value is nil
func setHelperVar(t *testing.T, value *string) {
	t.Helper()
	t.Setenv(helperVar, "")
	if value == nil {
		os.Unsetenv(helperVar)
		return
	}
	t.Setenv(helperVar, *value)
}

func ptr(s string) *string { return &s }

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		want  int
	}{
		{"unset uses default", nil, 42},
		{"valid integer", ptr("100"), 100},
		{"negative", ptr("-10"), -10},
		{"zero", ptr("0"), 0},
		{"garbage uses default", ptr("not-a-number"), 42},
		{"float uses default", ptr("42.5"), 42},
		{"empty uses default", ptr(""), 42},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHelperVar(t, tt.value)
			assert.Equal(t, tt.want, getEnvAsInt(helperVar, 42))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	def := 5 * time.Minute
	tests := []struct {
		name  string
		value *string
		want  time.Duration
	}{
		{"unset uses default", nil, def},
		{"minutes", ptr("10m"), 10 * time.Minute},
		{"compound", ptr("1h30m15s"), time.Hour + 30*time.Minute + 15*time.Second},
		{"milliseconds", ptr("250ms"), 250 * time.Millisecond},
		{"bare number uses default", ptr("30"), def},
		{"garbage uses default", ptr("soon"), def},
		{"empty uses default", ptr(""), def},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHelperVar(t, tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration(helperVar, def))
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	tests := []struct {
		name  string
		value *string
		def   bool
		want  bool
	}{
		{"unset uses default", nil, true, true},
		{"true", ptr("true"), false, true},
		{"numeric false", ptr("0"), true, false},
		{"garbage uses default", ptr("maybe"), true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setHelperVar(t, tt.value)
			assert.Equal(t, tt.want, getEnvAsBool(helperVar, tt.def))
		})
	}
}

func TestGetEnvAsList(t *testing.T) {
	setHelperVar(t, nil)
	assert.Empty(t, getEnvAsList(helperVar))

	setHelperVar(t, ptr("a, b,,c "))
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList(helperVar))
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxConnLifetime, cfg.DBMaxConnLifetime)
	})

	t.Run("overrides", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "2h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, 2*time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "lots")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "forever")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxConnIdleTime, cfg.DBMaxConnIdleTime)
	})
}
