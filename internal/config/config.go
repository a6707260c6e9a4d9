// Package config provides configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"quina-billing/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// RateCardPath points to the HCL rate card; empty uses the built-in card
	RateCardPath string `json:"rate_card_path,omitempty"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Storage contains run-history storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json, markdown)
	DefaultFormat string `json:"default_format"`

	// AuditPath is where the audit CSV is written; empty skips it
	AuditPath string `json:"audit_path,omitempty"`
}

// StorageConfig contains run-history settings
type StorageConfig struct {
	// Backend selects the store (memory, file, sqlite)
	Backend string `json:"backend"`

	// Path is the store location for file and sqlite backends
	Path string `json:"path,omitempty"`
}

// Default returns a default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".quina-billing", "runs.db")

	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
		},
		Storage: StorageConfig{
			Backend: "sqlite",
			Path:    dbPath,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
