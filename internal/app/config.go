package app

import (
	"errors"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the console service.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	GatewayURL     string        `envconfig:"GATEWAY_URL" default:"http://127.0.0.1:3000"`
	GatewayTimeout time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"10s"`

	RedisAddr    string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	ListCacheTTL time.Duration `envconfig:"LIST_CACHE_TTL" default:"5s"`

	NotifyTTL time.Duration `envconfig:"NOTIFY_TTL" default:"3s"`
	PageSize  int           `envconfig:"PAGE_SIZE" default:"10"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(cfg.GatewayURL, "http://") && !strings.HasPrefix(cfg.GatewayURL, "https://") {
		return nil, errors.New("gateway url must be an http(s) endpoint")
	}
	if cfg.PageSize <= 0 {
		return nil, errors.New("page size must be positive")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
