package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// CurrentVersion is written to new config files.
const CurrentVersion = "1"

// DBPathEnv overrides the configured database path when set.
const DBPathEnv = "RHOM_DB"

// Config represents the flat rhom configuration
type Config struct {
	Version             string `json:"version"`
	DBPath              string `json:"db_path,omitempty"`     // empty = ~/.rhom/rhom.db
	ModelsFile          string `json:"models_file,omitempty"` // relative to the config's directory
	LegacyConditions    bool   `json:"legacy_conditions,omitempty"`
	AllowNestedChildren bool   `json:"allow_nested_children,omitempty"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Version:    CurrentVersion,
		ModelsFile: "models.yaml",
	}
}

// LoadConfig reads .rhom/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".rhom", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// ResolveConfig loads the config in dir, falling back to DefaultConfig when
// none exists, and applies environment overrides.
func ResolveConfig(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if env := os.Getenv(DBPathEnv); env != "" {
		cfg.DBPath = env
	}
	return cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	rhomDir := filepath.Join(dir, ".rhom")
	if err := os.MkdirAll(rhomDir, 0755); err != nil {
		return fmt.Errorf("failed to create .rhom dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(rhomDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// ModelsPath returns the models file resolved against dir.
func (c *Config) ModelsPath(dir string) string {
	if c.ModelsFile == "" || filepath.IsAbs(c.ModelsFile) {
		return c.ModelsFile
	}
	return filepath.Join(dir, c.ModelsFile)
}

// DefaultDBPath returns the default database path.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".rhom", "rhom.db"), nil
}

// ResolveDBPath returns the configured database path or the default one.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, nil
	}
	return DefaultDBPath()
}
