// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port               int
	DBPath             string
	LogLevel           string
	MetricsNamespace   string
	SettleConcurrency  int
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	port, err := intOrDefault(k.String("PORT"), 8080)
	if err != nil {
		return nil, fmt.Errorf("PORT: %w", err)
	}
	concurrency, err := intOrDefault(k.String("SETTLE_CONCURRENCY"), 4)
	if err != nil {
		return nil, fmt.Errorf("SETTLE_CONCURRENCY: %w", err)
	}

	cfg := &Config{
		Port:               port,
		DBPath:             valueOrDefault(k.String("DB_PATH"), "./data/pour-decisions.db"),
		LogLevel:           strings.ToLower(valueOrDefault(k.String("LOG_LEVEL"), "info")),
		MetricsNamespace:   valueOrDefault(k.String("METRICS_NAMESPACE"), "pour_decisions"),
		SettleConcurrency:  concurrency,
		CORSAllowedOrigins: splitAndTrim(valueOrDefault(k.String("CORS_ALLOWED_ORIGINS"), "*")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("DB_PATH is required")
	}
	if c.SettleConcurrency < 1 {
		return fmt.Errorf("SETTLE_CONCURRENCY must be positive, got %d", c.SettleConcurrency)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	return nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	return ":" + strconv.Itoa(c.Port)
}

func intOrDefault(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", value)
	}
	return n, nil
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}
