// Package config loads grrep's optional project configuration.
//
// Configuration is read from a .grrep.yaml (or .grrep.yml) found by
// walking up from the starting directory, then overridden by GRREP_*
// environment variables, then by command-line flags (applied by the CLI
// layer).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/grrep/internal/errors"
)

// DefaultMaxFileSize is the default cap on searched file size (10MB).
const DefaultMaxFileSize = 10 * 1024 * 1024

// Config holds the tunable defaults for a search run.
type Config struct {
	// MaxDepth is the default traversal depth limit. Negative means
	// unlimited.
	MaxDepth int `yaml:"max_depth"`

	// MaxFileSize is the largest file size searched, in bytes.
	MaxFileSize int64 `yaml:"max_file_size"`

	// IgnoreCase makes matching case-insensitive by default.
	IgnoreCase bool `yaml:"ignore_case"`

	// NoIgnore disables gitignore processing by default.
	NoIgnore bool `yaml:"no_ignore"`

	// Color controls output coloring: auto, always, or never.
	Color string `yaml:"color"`

	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxDepth:    -1,
		MaxFileSize: DefaultMaxFileSize,
		Color:       "auto",
		LogLevel:    "warn",
	}
}

// Load reads a config file, applies environment overrides, and
// validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromProject locates and loads the nearest config file at or above
// startDir. With no config file present it returns the defaults with
// environment overrides applied.
func LoadFromProject(startDir string) (*Config, error) {
	if path, ok := findConfigFile(startDir); ok {
		return Load(path)
	}

	cfg := Default()
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile walks up from startDir looking for .grrep.yaml or
// .grrep.yml.
func findConfigFile(startDir string) (string, bool) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false
	}

	for {
		for _, name := range []string{".grrep.yaml", ".grrep.yml"} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, true
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// applyEnv overrides fields from GRREP_* environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GRREP_MAX_DEPTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxDepth = n
		}
	}
	if v := os.Getenv("GRREP_COLOR"); v != "" {
		c.Color = v
	}
	if v := os.Getenv("GRREP_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Validate checks field values.
func (c *Config) Validate() error {
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"invalid color mode %q (want auto, always, or never)", c.Color)
	}

	if c.MaxFileSize < 0 {
		return errors.Newf(errors.ErrCodeConfigInvalid,
			"max_file_size must be non-negative, got %d", c.MaxFileSize)
	}

	return nil
}

// String returns a compact description, used in debug logging.
func (c *Config) String() string {
	return fmt.Sprintf("max_depth=%d max_file_size=%d color=%s log_level=%s",
		c.MaxDepth, c.MaxFileSize, c.Color, c.LogLevel)
}
