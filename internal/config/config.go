package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultUserID is the single learner identity the backend knows about.
const DefaultUserID = "default_user"

// Config holds all client configuration.
type Config struct {
	// Backend
	APIBaseURL string `envconfig:"PATHWISE_API_URL" default:"http://localhost:8000"`
	UserID     string `envconfig:"PATHWISE_USER_ID" default:"default_user"`

	// HTTPTimeout bounds a single backend request. Zero means no timeout.
	HTTPTimeout time.Duration `envconfig:"PATHWISE_HTTP_TIMEOUT" default:"0s"`

	// Storage
	DBPath   string `envconfig:"PATHWISE_DB"`
	RedisURL string `envconfig:"PATHWISE_REDIS_URL"`

	// Logging
	LogLevel  string `envconfig:"PATHWISE_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PATHWISE_LOG_FORMAT" default:"json"`
	LogFile   string `envconfig:"PATHWISE_LOG_FILE"`
}

// Load reads configuration from the environment, loading a .env file first
// if one exists in the working directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that have no usable fallback.
func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("PATHWISE_API_URL must not be empty")
	}
	if c.UserID == "" {
		return fmt.Errorf("PATHWISE_USER_ID must not be empty")
	}
	if c.HTTPTimeout < 0 {
		return fmt.Errorf("PATHWISE_HTTP_TIMEOUT must not be negative, got %s", c.HTTPTimeout)
	}
	return nil
}

// UsesRedis reports whether unlock markers should live in Redis instead of
// the local database.
func (c *Config) UsesRedis() bool {
	return c.RedisURL != ""
}
