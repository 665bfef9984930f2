package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the auction engine.
// Values come from ENV with defaults; an optional YAML file pointed to by
// CONFIG_PATH is read first and then overridden by ENV.
type Config struct {
	Port          string        `yaml:"port" env:"PORT" env-default:"8080"`
	LogLevel      string        `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	SweepInterval time.Duration `yaml:"sweep_interval" env:"SWEEP_INTERVAL" env-default:"5m"`
	MaxBidRetries uint64        `yaml:"max_bid_retries" env:"MAX_BID_RETRIES" env-default:"3"`
	RetryBackoff  time.Duration `yaml:"retry_backoff" env:"RETRY_BACKOFF" env-default:"25ms"`
	JWTSecret     string        `yaml:"jwt_secret" env:"JWT_SECRET" env-default:""`
	WSEnabled     bool          `yaml:"ws_enabled" env:"WS_ENABLED" env-default:"true"`
}

// Load reads configuration from an optional YAML file and environment variables.
// ENV always wins over file values.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.SweepInterval <= 0 {
		return fmt.Errorf("sweep_interval must be positive, got %s", c.SweepInterval)
	}
	if c.RetryBackoff <= 0 {
		return fmt.Errorf("retry_backoff must be positive, got %s", c.RetryBackoff)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
