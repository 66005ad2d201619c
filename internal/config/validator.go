package config

import (
	"errors"
	"fmt"
	"strings"
)

// MinAPIKeyLength is the shortest API key accepted without a warning
const MinAPIKeyLength = 32

// Validate checks values Load accepts but the server cannot run with.
// Non-fatal problems come back as warnings.
func (c *Config) Validate() ([]string, error) {
	var problems []string
	if c.Port < 1 || c.Port > 65535 {
		problems = append(problems, fmt.Sprintf("PORT must be between 1 and 65535, got %d", c.Port))
	}
	for _, f := range []struct{ name, value string }{
		{"DB_HOST", c.DBHost}, {"DB_NAME", c.DBName}, {"DB_USER", c.DBUser},
	} {
		if f.value == "" {
			problems = append(problems, f.name+" must not be empty")
		}
	}
	if c.WorkerPoolSize < 1 {
		problems = append(problems, fmt.Sprintf("WORKER_POOL_SIZE must be positive, got %d", c.WorkerPoolSize))
	}
	if c.IdempotencyCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("IDEMPOTENCY_CACHE_SIZE must be positive, got %d", c.IdempotencyCacheSize))
	}
	if c.MaxBodyBytes < 1 {
		problems = append(problems, fmt.Sprintf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes))
	}
	if c.ShutdownTimeout <= 0 {
		problems = append(problems, "SHUTDOWN_TIMEOUT must be positive")
	}
	if len(problems) > 0 {
		return nil, errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}

	var warnings []string
	if len(c.APIKey) < MinAPIKeyLength {
		warnings = append(warnings, fmt.Sprintf("API_KEY is shorter than %d characters - generate one with: openssl rand -hex 32", MinAPIKeyLength))
	}
	if c.DBPassword == "postgres" && !c.isDev() {
		warnings = append(warnings, "DB_PASSWORD is the postgres default outside a dev environment")
	}
	if c.RedisAddr == "" {
		warnings = append(warnings, "REDIS_ADDR is not set - the leaderboard will be served from PostgreSQL")
	}
	return warnings, nil
}

func (c *Config) isDev() bool {
	return c.Environment == "dev" || c.Environment == "development"
}
