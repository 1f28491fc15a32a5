package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, 18.0, cfg.FontSize)
	assert.Equal(t, "|", cfg.Separator)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dark\nfont_size: 14\n"), 0o644))

	t.Setenv("PLACARD_THEME", "")
	t.Setenv("PLACARD_BACKEND", "")

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 14.0, cfg.FontSize)
	// Unset keys keep their defaults.
	assert.Equal(t, "auto", cfg.Backend)
	assert.Equal(t, "|", cfg.Separator)
}

func TestLoadFromPath_BadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unclosed"), 0o644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PLACARD_THEME", "light")
	t.Setenv("PLACARD_BACKEND", "x11")

	cfg := DefaultConfig()
	applyEnvOverrides(cfg)

	assert.Equal(t, "light", cfg.Theme)
	assert.Equal(t, "x11", cfg.Backend)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "bad theme", mutate: func(c *Config) { c.Theme = "solarized" }, wantErr: true},
		{name: "bad backend", mutate: func(c *Config) { c.Backend = "drm" }, wantErr: true},
		{name: "tiny font", mutate: func(c *Config) { c.FontSize = 2 }, wantErr: true},
		{name: "huge font", mutate: func(c *Config) { c.FontSize = 100 }, wantErr: true},
		{name: "empty separator", mutate: func(c *Config) { c.Separator = "" }, wantErr: true},
		{name: "wayland pin", mutate: func(c *Config) { c.Backend = "wayland" }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
