// Package config loads the optional brew-backup configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the complete brew-backup configuration.
type Config struct {
	Brew     BrewConfig     `yaml:"brew"`
	Defaults DefaultsConfig `yaml:"defaults"`
	History  HistoryConfig  `yaml:"history"`
}

// BrewConfig configures how the brew binary is located.
type BrewConfig struct {
	// Path overrides binary detection, e.g. /opt/homebrew/bin/brew.
	Path string `yaml:"path"`
}

// DefaultsConfig provides fallbacks for per-command flags.
type DefaultsConfig struct {
	// Target is used when backup/restore/list get no --target or --file.
	Target string `yaml:"target"`
}

// HistoryConfig configures the run-history database.
type HistoryConfig struct {
	Enabled *bool  `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// HistoryEnabled reports whether runs should be recorded. Defaults to on.
func (c *Config) HistoryEnabled() bool {
	return c.History.Enabled == nil || *c.History.Enabled
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "brew-backup", "config.yaml"), nil
}

// Load reads and parses the configuration file. A missing file is not an
// error: defaults apply. A .env file in the working directory is loaded
// first, best effort, so config values can reference those variables.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(os.ExpandEnv(path))
	switch {
	case os.IsNotExist(err):
		// fall through to defaults
	case err != nil:
		return nil, fmt.Errorf("read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.expandEnv()
	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// expandEnv expands environment variables in all string fields.
func (c *Config) expandEnv() {
	c.Brew.Path = os.ExpandEnv(c.Brew.Path)
	c.Defaults.Target = os.ExpandEnv(c.Defaults.Target)
	c.History.Path = os.ExpandEnv(c.History.Path)
}

// applyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) applyDefaults() error {
	if c.History.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		c.History.Path = filepath.Join(home, ".local", "state", "brew-backup", "history.db")
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Brew.Path != "" {
		if _, err := os.Stat(c.Brew.Path); err != nil {
			return fmt.Errorf("brew.path: %w", err)
		}
	}
	return nil
}
