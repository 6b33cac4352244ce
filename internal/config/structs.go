package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for framecut.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	Verbose  bool   `mapstructure:"verbose"`

	Gallery GalleryConfig `mapstructure:"gallery"`
	Ingest  IngestConfig  `mapstructure:"ingest"`
	Crop    CropConfig    `mapstructure:"crop"`
	Export  ExportConfig  `mapstructure:"export"`
}

// GalleryConfig bounds the session and the images admitted into it.
type GalleryConfig struct {
	MaxImages    int   `mapstructure:"max_images"`
	MaxFileBytes int64 `mapstructure:"max_file_bytes"`
	MinDimension int   `mapstructure:"min_dimension"`
	MaxDimension int   `mapstructure:"max_dimension"`
}

// IngestConfig tunes the admission pipeline's scheduling behavior.
type IngestConfig struct {
	DebounceDelay    time.Duration `mapstructure:"debounce_delay"`
	NoticeFlushDelay time.Duration `mapstructure:"notice_flush_delay"`
	ValidateTimeout  time.Duration `mapstructure:"validate_timeout"`
}

// CropConfig bounds crop rectangle dimensions in image-pixel units.
type CropConfig struct {
	MinSize      int  `mapstructure:"min_size"`
	MaxSize      int  `mapstructure:"max_size"`
	SaveOnCancel bool `mapstructure:"save_on_cancel"`
	GlobalMemory bool `mapstructure:"global_memory"`
}

// ExportConfig controls where and how cropped artifacts are written.
type ExportConfig struct {
	OutputDir   string `mapstructure:"output_dir"`
	NamePrefix  string `mapstructure:"name_prefix"`
	JPEGQuality int    `mapstructure:"jpeg_quality"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Verbose:  false,
		Gallery: GalleryConfig{
			MaxImages:    10,
			MaxFileBytes: 10 * 1024 * 1024,
			MinDimension: 16,
			MaxDimension: 10000,
		},
		Ingest: IngestConfig{
			DebounceDelay:    50 * time.Millisecond,
			NoticeFlushDelay: 150 * time.Millisecond,
			ValidateTimeout:  10 * time.Second,
		},
		Crop: CropConfig{
			MinSize:      1,
			MaxSize:      9999,
			SaveOnCancel: false,
			GlobalMemory: false,
		},
		Export: ExportConfig{
			OutputDir:   ".",
			NamePrefix:  "cropped_",
			JPEGQuality: 92,
		},
	}
}

// Validate checks the configuration for values the pipeline cannot work with.
func (c *Config) Validate() error {
	if c.Gallery.MaxImages <= 0 {
		return fmt.Errorf("gallery.max_images must be positive, got %d", c.Gallery.MaxImages)
	}
	if c.Gallery.MaxFileBytes <= 0 {
		return fmt.Errorf("gallery.max_file_bytes must be positive, got %d", c.Gallery.MaxFileBytes)
	}
	if c.Gallery.MinDimension < 1 {
		return fmt.Errorf("gallery.min_dimension must be at least 1, got %d", c.Gallery.MinDimension)
	}
	if c.Gallery.MaxDimension < c.Gallery.MinDimension {
		return fmt.Errorf("gallery.max_dimension %d is below gallery.min_dimension %d",
			c.Gallery.MaxDimension, c.Gallery.MinDimension)
	}
	if c.Crop.MinSize < 1 {
		return fmt.Errorf("crop.min_size must be at least 1, got %d", c.Crop.MinSize)
	}
	if c.Crop.MaxSize < c.Crop.MinSize {
		return fmt.Errorf("crop.max_size %d is below crop.min_size %d", c.Crop.MaxSize, c.Crop.MinSize)
	}
	if c.Ingest.ValidateTimeout <= 0 {
		return fmt.Errorf("ingest.validate_timeout must be positive, got %s", c.Ingest.ValidateTimeout)
	}
	if c.Ingest.DebounceDelay < 0 || c.Ingest.NoticeFlushDelay < 0 {
		return fmt.Errorf("ingest delays must not be negative")
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		return fmt.Errorf("export.jpeg_quality must be in [1,100], got %d", c.Export.JPEGQuality)
	}
	return nil
}
