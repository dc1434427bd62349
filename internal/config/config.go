// Package config loads server configuration from flags, environment
// variables and an optional .env file, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all server configuration.
type Config struct {
	Server ServerConfig
	Data   DataConfig
	Auth   AuthConfig
	Log    LogConfig
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host          string
	Port          int
	Environment   string // development, staging, production
	CORSOrigins   []string
	AdvertiseMDNS bool
}

// DataConfig configures where the server keeps its state.
type DataConfig struct {
	// Path is the data directory: database, auth key, search index and
	// uploaded images all live underneath it.
	Path string
}

// AuthConfig configures token lifetimes. The signing key itself is managed
// on disk, not in config.
type AuthConfig struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}

// LogConfig configures logging.
type LogConfig struct {
	Level string
}

// Load parses flags and the environment into a Config.
func Load() (*Config, error) {
	host := flag.String("host", "", "Host to bind the HTTP listener to")
	port := flag.Int("port", 0, "Port to bind the HTTP listener to")
	environment := flag.String("env", "", "Environment: development, staging, production")
	dataPath := flag.String("data", "", "Data directory")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	envFile := flag.String("env-file", ".env", "Path to an env file")
	flag.Parse()

	loadEnvFile(*envFile)

	cfg := &Config{
		Server: ServerConfig{
			Host:          configValue(*host, "PLATEFUL_HOST", "0.0.0.0"),
			Port:          intConfigValue(*port, "PLATEFUL_PORT", 8080),
			Environment:   configValue(*environment, "PLATEFUL_ENV", "development"),
			CORSOrigins:   splitList(configValue("", "PLATEFUL_CORS_ORIGINS", "*")),
			AdvertiseMDNS: boolConfigValue("PLATEFUL_MDNS", true),
		},
		Data: DataConfig{
			Path: configValue(*dataPath, "PLATEFUL_DATA", "~/.plateful"),
		},
		Auth: AuthConfig{
			AccessTokenTTL:  durationConfigValue("PLATEFUL_ACCESS_TOKEN_TTL", 15*time.Minute),
			RefreshTokenTTL: durationConfigValue("PLATEFUL_REFRESH_TOKEN_TTL", 30*24*time.Hour),
		},
		Log: LogConfig{
			Level: configValue(*logLevel, "PLATEFUL_LOG_LEVEL", "info"),
		},
	}

	expanded, err := expandPath(cfg.Data.Path)
	if err != nil {
		return nil, fmt.Errorf("expand data path: %w", err)
	}
	cfg.Data.Path = expanded

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes before the server
// starts acting on it.
func (c *Config) Validate() error {
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("invalid environment %q: must be development, staging or production", c.Server.Environment)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	if c.Data.Path == "" {
		return fmt.Errorf("data path must not be empty")
	}

	if c.Auth.AccessTokenTTL <= 0 || c.Auth.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token TTLs must be positive")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// DatabasePath is the SQLite database file location.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.Path, "plateful.db")
}

// ImagesPath is the root directory for uploaded images.
func (c *Config) ImagesPath() string {
	return filepath.Join(c.Data.Path, "images")
}

// SearchIndexPath is the bleve index location.
func (c *Config) SearchIndexPath() string {
	return filepath.Join(c.Data.Path, "search.bleve")
}

// loadEnvFile reads KEY=value pairs into the process environment. Existing
// environment variables take precedence over file entries.
func loadEnvFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		if _, exists := os.LookupEnv(key); !exists {
			os.Setenv(key, value)
		}
	}
}

// configValue resolves a string setting: flag beats env beats default.
func configValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return defaultValue
}

// intConfigValue resolves an integer setting: flag beats env beats default.
func intConfigValue(flagValue int, envKey string, defaultValue int) int {
	if flagValue != 0 {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// boolConfigValue resolves a boolean setting from the environment.
func boolConfigValue(envKey string, defaultValue bool) bool {
	if v := os.Getenv(envKey); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

// durationConfigValue resolves a duration setting from the environment.
func durationConfigValue(envKey string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(envKey); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// splitList splits a comma-separated value into trimmed entries.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands a leading ~ and resolves the path to an absolute,
// cleaned form.
func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
