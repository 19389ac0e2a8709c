package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Storage   StorageConfig
	History   HistoryConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
	// CORSOrigins is a comma-separated list; "*" allows any origin
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// StorageConfig selects the durable store behind the history.
type StorageConfig struct {
	Backend         string        `envconfig:"STORAGE_BACKEND" default:"file"`
	Path            string        `envconfig:"STORAGE_PATH" default:"./data"`
	Namespace       string        `envconfig:"STORAGE_NAMESPACE" default:"default"`
	BreakerFailures uint32        `envconfig:"STORAGE_BREAKER_FAILURES" default:"3"`
	BreakerCooldown time.Duration `envconfig:"STORAGE_BREAKER_COOLDOWN" default:"30s"`
}

// HistoryConfig holds history configuration.
type HistoryConfig struct {
	Capacity int `envconfig:"HISTORY_CAPACITY" default:"30"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "127.0.0.1",
			CORSOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
		},
		Storage: StorageConfig{
			Backend:         "file",
			Path:            "./data",
			Namespace:       "default",
			BreakerFailures: 3,
			BreakerCooldown: 30 * time.Second,
		},
		History: HistoryConfig{
			Capacity: 30,
		},
	}
}
