// Package config provides configuration loading and management for the
// term graph CLI and its storage backends.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Store backend names.
const (
	BackendMemory = "memory"
	BackendNATS   = "nats"
)

// Config represents the complete termgraph configuration
type Config struct {
	Store StoreConfig `yaml:"store"`
	NATS  NATSConfig  `yaml:"nats"`
	Log   LogConfig   `yaml:"log"`
}

// StoreConfig selects and configures the term store backend
type StoreConfig struct {
	// Backend is the storage backend: "memory" or "nats"
	Backend string `yaml:"backend"`
}

// NATSConfig configures the NATS connection for the nats backend
type NATSConfig struct {
	// URL is the NATS server URL
	URL string `yaml:"url"`
}

// LogConfig configures logging
type LogConfig struct {
	// Level is the minimum log level: debug, info, warn, error
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMemory,
		},
		NATS: NATSConfig{
			URL: "nats://127.0.0.1:4222",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendNATS:
	default:
		return fmt.Errorf("store.backend must be %q or %q, got %q", BackendMemory, BackendNATS, c.Store.Backend)
	}
	if c.Store.Backend == BackendNATS && c.NATS.URL == "" {
		return fmt.Errorf("nats.url is required for the nats backend")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Merge overlays non-empty fields of other onto c
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Store.Backend != "" {
		c.Store.Backend = other.Store.Backend
	}
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
