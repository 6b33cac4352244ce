package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10, cfg.Gallery.MaxImages)
	assert.Equal(t, int64(10*1024*1024), cfg.Gallery.MaxFileBytes)
	assert.Equal(t, 16, cfg.Gallery.MinDimension)
	assert.Equal(t, 10000, cfg.Gallery.MaxDimension)
	assert.Equal(t, 1, cfg.Crop.MinSize)
	assert.Equal(t, 9999, cfg.Crop.MaxSize)
	assert.Equal(t, 10*time.Second, cfg.Ingest.ValidateTimeout)
}

func TestConfig_Validate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max images", func(c *Config) { c.Gallery.MaxImages = 0 }},
		{"negative file size", func(c *Config) { c.Gallery.MaxFileBytes = -1 }},
		{"zero min dimension", func(c *Config) { c.Gallery.MinDimension = 0 }},
		{"max below min dimension", func(c *Config) { c.Gallery.MaxDimension = 8 }},
		{"zero crop min", func(c *Config) { c.Crop.MinSize = 0 }},
		{"crop max below min", func(c *Config) { c.Crop.MaxSize = 0 }},
		{"zero validate timeout", func(c *Config) { c.Ingest.ValidateTimeout = 0 }},
		{"negative debounce", func(c *Config) { c.Ingest.DebounceDelay = -time.Second }},
		{"jpeg quality out of range", func(c *Config) { c.Export.JPEGQuality = 101 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoader_LoadWithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framecut.yaml")

	raw, err := yaml.Marshal(map[string]any{
		"log_level": "debug",
		"gallery": map[string]any{
			"max_images": 5,
		},
		"crop": map[string]any{
			"save_on_cancel": true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	cfg, err := NewIsolatedLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Gallery.MaxImages)
	assert.True(t, cfg.Crop.SaveOnCancel)
	// Untouched keys keep their defaults.
	assert.Equal(t, int64(10*1024*1024), cfg.Gallery.MaxFileBytes)
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	_, err := NewIsolatedLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoader_LoadWithFile_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "framecut.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gallery:\n  max_images: -3\n"), 0o600))

	_, err := NewIsolatedLoader().LoadWithFile(path)
	assert.ErrorContains(t, err, "validation failed")
}
