// Package config loads user defaults for placard. Flags always win over the
// file, the file wins over detection; nothing here is required to exist.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTheme     = "auto"
	DefaultBackend   = "auto"
	DefaultFontSize  = 18.0
	DefaultSeparator = "|"
)

// Config represents the complete placard configuration
type Config struct {
	// Theme is auto, light, or dark.
	Theme string `yaml:"theme"`
	// Backend is auto, x11, or wayland. Pinning a backend skips the
	// Wayland-then-X11 fallback walk.
	Backend string `yaml:"backend"`
	// FontSize is the base text size in logical units.
	FontSize float64 `yaml:"font_size"`
	// Separator joins multi-value payloads (list, forms) unless a flag
	// overrides it per invocation.
	Separator string `yaml:"separator"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Theme:     DefaultTheme,
		Backend:   DefaultBackend,
		FontSize:  DefaultFontSize,
		Separator: DefaultSeparator,
	}
}

// Load builds the effective configuration: defaults, then the user file,
// then environment overrides, then validation.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if path := userConfigPath(); path != "" {
		if err := loadAndMerge(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := loadAndMerge(cfg, path); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// userConfigPath returns ~/.config/placard/config.yaml, honoring
// XDG_CONFIG_HOME, or "" when no home can be resolved.
func userConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "placard", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "placard", "config.yaml")
}

// loadAndMerge loads a YAML file and merges set keys into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}

	if override.Theme != "" {
		cfg.Theme = override.Theme
	}
	if override.Backend != "" {
		cfg.Backend = override.Backend
	}
	if override.FontSize != 0 {
		cfg.FontSize = override.FontSize
	}
	if override.Separator != "" {
		cfg.Separator = override.Separator
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PLACARD_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("PLACARD_BACKEND"); v != "" {
		cfg.Backend = v
	}
}

// Validate checks enum fields and numeric ranges.
func (c *Config) Validate() error {
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		return fmt.Errorf("theme must be auto, light, or dark (got %q)", c.Theme)
	}

	switch c.Backend {
	case "auto", "x11", "wayland":
	default:
		return fmt.Errorf("backend must be auto, x11, or wayland (got %q)", c.Backend)
	}

	if c.FontSize < 6 || c.FontSize > 72 {
		return fmt.Errorf("font_size %g out of range [6,72]", c.FontSize)
	}

	if c.Separator == "" {
		return fmt.Errorf("separator must not be empty")
	}

	return nil
}
