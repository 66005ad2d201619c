package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                 8080,
		Environment:          "prod",
		DBUser:               "pomo",
		DBPassword:           "s3cret",
		DBHost:               "db",
		DBName:               "pomoquest",
		RedisAddr:            "redis:6379",
		APIKey:               "0123456789abcdef0123456789abcdef",
		WorkerPoolSize:       DefaultWorkerPoolSize,
		IdempotencyCacheSize: DefaultIdempotencyCacheSize,
		MaxBodyBytes:         DefaultMaxBodyBytes,
		ShutdownTimeout:      DefaultShutdownTimeout,
	}
}

func TestValidate_Valid(t *testing.T) {
	warnings, err := validConfig().Validate()

	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero port", func(c *Config) { c.Port = 0 }, "PORT must be between 1 and 65535, got 0"},
		{"port too large", func(c *Config) { c.Port = 65536 }, "got 65536"},
		{"missing db host", func(c *Config) { c.DBHost = "" }, "DB_HOST must not be empty"},
		{"no workers", func(c *Config) { c.WorkerPoolSize = 0 }, "WORKER_POOL_SIZE"},
		{"no cache", func(c *Config) { c.IdempotencyCacheSize = -1 }, "IDEMPOTENCY_CACHE_SIZE"},
		{"no body", func(c *Config) { c.MaxBodyBytes = 0 }, "MAX_BODY_BYTES"},
		{"no shutdown window", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			_, err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.DBHost = ""
	cfg.DBName = ""

	_, err := cfg.Validate()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_HOST must not be empty; DB_NAME must not be empty")
}

func TestValidate_Warnings(t *testing.T) {
	cfg := validConfig()
	cfg.APIKey = "short"
	cfg.DBPassword = "postgres"
	cfg.RedisAddr = ""
	cfg.ShutdownTimeout = time.Second

	warnings, err := cfg.Validate()

	require.NoError(t, err)
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "API_KEY")
	assert.Contains(t, warnings[1], "DB_PASSWORD")
	assert.Contains(t, warnings[2], "REDIS_ADDR")

	cfg.Environment = "dev"
	warnings, err = cfg.Validate()
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}
