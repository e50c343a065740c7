package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/netlens/netlens/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration (inventory API serve mode)
	Server ServerConfig

	// Plugin subsystem configuration
	Plugins PluginsConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// PluginsConfig holds plugin discovery configuration
type PluginsConfig struct {
	// DenyListPath points at a YAML file of module basenames excluded from
	// every scan. Empty disables the deny-list.
	DenyListPath string
	// Deny is the loaded deny-list.
	Deny []string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Plugins:       loadPluginsConfig(),
		Observability: loadObservabilityConfig(),
	}

	if cfg.Plugins.DenyListPath != "" {
		deny, err := LoadDenyList(cfg.Plugins.DenyListPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load plugin deny-list: %w", err)
		}
		cfg.Plugins.Deny = deny
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("NETLENS_HOST", "127.0.0.1"),
		Port:            getEnv("NETLENS_PORT", "8080"),
		ReadTimeout:     getEnvDuration("NETLENS_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("NETLENS_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("NETLENS_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("NETLENS_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// loadPluginsConfig loads plugin discovery configuration from environment
func loadPluginsConfig() PluginsConfig {
	return PluginsConfig{
		DenyListPath: getEnv("NETLENS_PLUGIN_DENYLIST", ""),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("NETLENS_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("NETLENS_METRICS_ENABLED", true),
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port %q", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}

// getEnv returns an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration returns a duration environment variable or a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
