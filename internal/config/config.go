// Package config loads bot settings from the environment
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// StorageBackend selects where character ratings are kept
type StorageBackend string

const (
	StorageSQLite StorageBackend = "sqlite"
	StorageRedis  StorageBackend = "redis"
	StorageMemory StorageBackend = "memory"
)

// Config holds all configuration for the application
type Config struct {
	Discord DiscordConfig
	Storage StorageConfig
	Log     LogConfig
	Health  HealthConfig
	Tracing TracingConfig
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `env:"DISCORD_TOKEN"`
	AppID   string `env:"DISCORD_APP_ID"`
	GuildID string `env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// StorageConfig selects and locates the attribute store
type StorageConfig struct {
	Backend    StorageBackend `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	SQLitePath string         `env:"SQLITE_PATH" envDefault:"scum-bot.db"`
	RedisURL   string         `env:"REDIS_URL"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// HealthConfig holds the health endpoint settings. An empty address disables it.
type HealthConfig struct {
	Addr string `env:"HEALTH_ADDR" envDefault:":8081"`
}

// TracingConfig holds OpenTelemetry settings. An empty endpoint disables tracing.
type TracingConfig struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return parse(env.Options{})
}

// LoadFrom loads configuration from the given variables instead of the process environment
func LoadFrom(environment map[string]string) (*Config, error) {
	return parse(env.Options{Environment: environment})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Storage.Backend = StorageBackend(strings.ToLower(strings.TrimSpace(string(cfg.Storage.Backend))))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the storage settings every binary needs
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case StorageRedis:
		if strings.TrimSpace(c.Storage.RedisURL) == "" {
			return errors.New("REDIS_URL is required for the redis backend")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q (want sqlite, redis or memory)", c.Storage.Backend)
	}
	return nil
}

// ValidateDiscord checks the settings needed to connect to Discord
func (c *Config) ValidateDiscord() error {
	if c.Discord.Token == "" {
		return errors.New("DISCORD_TOKEN is required")
	}
	if c.Discord.AppID == "" {
		return errors.New("DISCORD_APP_ID is required")
	}
	return nil
}
