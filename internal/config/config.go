// Package config loads service configuration. Defaults are overlaid first
// by an optional YAML file (CONFIG_FILE) and then by environment variables,
// so the environment always wins.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Port    string        `yaml:"port" validate:"required"`
	API     APIConfig     `yaml:"api"`
	Refresh RefreshConfig `yaml:"refresh"`
	Persist PersistConfig `yaml:"persist"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig points at the upstream platform API.
type APIConfig struct {
	BaseURL     string        `yaml:"baseUrl" validate:"required,url"`
	Timeout     time.Duration `yaml:"timeout" validate:"min=0"`
	UserAgent   string        `yaml:"userAgent"`
	RefreshPath string        `yaml:"refreshPath"`
}

// RefreshConfig controls the background competition refresher.
type RefreshConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval" validate:"min=0"`
}

// PersistConfig controls where state slices are written.
type PersistConfig struct {
	Path string `yaml:"path"`
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool   `yaml:"enabled"`
	OtlpEndpoint string `yaml:"otlpEndpoint"`
	OtlpInsecure bool   `yaml:"otlpInsecure"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

func defaults() Config {
	return Config{
		Port: "8080",
		API: APIConfig{
			BaseURL: "https://api.prizeportal.example",
			Timeout: 10 * time.Second,
		},
		Refresh: RefreshConfig{
			Enabled:  true,
			Interval: 60 * time.Second,
		},
		Persist: PersistConfig{
			Path: "data/state",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the optional CONFIG_FILE,
// and the environment, then validates it.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	applyEnv(&cfg)

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envOrDefault("PORT", cfg.Port)
	cfg.API.BaseURL = envOrDefault("API_BASE_URL", cfg.API.BaseURL)
	cfg.API.Timeout = envDuration("API_TIMEOUT", cfg.API.Timeout)
	cfg.API.UserAgent = envOrDefault("API_USER_AGENT", cfg.API.UserAgent)
	cfg.API.RefreshPath = envOrDefault("API_REFRESH_PATH", cfg.API.RefreshPath)
	cfg.Refresh.Enabled = envBool("REFRESH_ENABLED", cfg.Refresh.Enabled)
	cfg.Refresh.Interval = envDuration("REFRESH_INTERVAL", cfg.Refresh.Interval)
	cfg.Persist.Path = envOrDefault("PERSIST_PATH", cfg.Persist.Path)
	cfg.Metrics.Enabled = envBool("METRICS_ENABLED", cfg.Metrics.Enabled)
	cfg.Metrics.OtlpEndpoint = envOrDefault("OTLP_ENDPOINT", cfg.Metrics.OtlpEndpoint)
	cfg.Metrics.OtlpInsecure = envBool("OTLP_INSECURE", cfg.Metrics.OtlpInsecure)
	cfg.Logging.Level = envOrDefault("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = envOrDefault("LOG_FORMAT", cfg.Logging.Format)
}

// Validate checks the configuration's structural constraints.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return parsed
}

func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return parsed
}
