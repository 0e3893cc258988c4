package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the client core and its tooling.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	BackendBaseURL string        `envconfig:"BACKEND_BASE_URL" default:"http://127.0.0.1:8490"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// RedisAddr enables the shared grant cache when set; empty keeps the
	// per-screen fetch behavior.
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:""`
	GrantCacheTTL time.Duration `envconfig:"GRANT_CACHE_TTL" default:"5m"`

	MockAPIAddr         string        `envconfig:"MOCKAPI_ADDR" default:":8490"`
	MockAPIReadTimeout  time.Duration `envconfig:"MOCKAPI_READ_TIMEOUT" default:"15s"`
	MockAPIWriteTimeout time.Duration `envconfig:"MOCKAPI_WRITE_TIMEOUT" default:"15s"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.BackendBaseURL == "" {
		return nil, errors.New("backend base url must be provided")
	}
	return &cfg, nil
}

// IsProduction returns true when running in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
