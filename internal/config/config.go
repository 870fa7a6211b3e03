// Package config handles configuration loading with defaults, an optional
// YAML file, and environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Auth    AuthConfig    `yaml:"auth"`
	Limits  LimitsConfig  `yaml:"limits"`
	Log     LogConfig     `yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	// Backend is "memory" or "sqlite".
	Backend string `yaml:"backend"`
	// Path is the SQLite database file, ignored for the memory backend.
	Path string `yaml:"path"`
	// Seed populates demo actors on startup when the directory is empty.
	Seed bool `yaml:"seed"`
}

// AuthConfig contains session token settings.
type AuthConfig struct {
	// Secret signs session tokens. Required outside of tests.
	Secret string `yaml:"secret"`
	// TokenTTL is how long sessions stay valid.
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// LimitsConfig contains per-client rate limiting settings.
type LimitsConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is "text" (colored, for development) or "json".
	Format string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend: "memory",
			Path:    "./data/marketplace.db",
			Seed:    true,
		},
		Auth: AuthConfig{
			TokenTTL: 24 * time.Hour,
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 20,
			Burst:             40,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path if it
// exists, then environment overrides. An empty path skips the file step.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("SERVER_ADDR", c.Server.Addr)
	c.Storage.Backend = getEnv("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Path = getEnv("STORAGE_PATH", c.Storage.Path)
	c.Storage.Seed = getEnvBool("STORAGE_SEED", c.Storage.Seed)
	c.Auth.Secret = getEnv("AUTH_SECRET", c.Auth.Secret)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "sqlite" && c.Storage.Path == "" {
		return fmt.Errorf("storage path required for sqlite backend")
	}
	if c.Limits.RequestsPerSecond <= 0 || c.Limits.Burst <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
