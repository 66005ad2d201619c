package config

import (
	"time"

	"github.com/joho/godotenv"
)

// ClientConfig holds the offline-first client configuration. Command-line
// flags override these values.
type ClientConfig struct {
	DBPath         string
	ServerURL      string
	APIKey         string
	UserID         string
	Demo           bool
	RequestTimeout time.Duration
	FlushInterval  time.Duration
	Timezone       string
	LogLevel       string
	LogFormat      string
}

// LoadClient loads the client configuration from environment variables
func LoadClient() *ClientConfig {
	_ = godotenv.Load()

	return &ClientConfig{
		DBPath:         getEnv("POMO_DB", DefaultClientDBPath),
		ServerURL:      getEnv("POMO_SERVER_URL", DefaultServerURL),
		APIKey:         getEnv("POMO_API_KEY", ""),
		UserID:         getEnv("POMO_USER_ID", ""),
		Demo:           getEnvAsBool("POMO_DEMO", false),
		RequestTimeout: getEnvAsDuration("POMO_REQUEST_TIMEOUT", DefaultRequestTimeout),
		FlushInterval:  getEnvAsDuration("FLUSH_INTERVAL", DefaultFlushInterval),
		Timezone:       getEnv("TIMEZONE", "UTC"),
		LogLevel:       getEnv("LOG_LEVEL", DefaultClientLogLevel),
		LogFormat:      getEnv("LOG_FORMAT", DefaultLogFormat),
	}
}
