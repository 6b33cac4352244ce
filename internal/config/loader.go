package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "framecut"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "FRAMECUT"
)

// Loader handles loading configuration from files, environment, and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader bound to the global viper instance so that
// cobra flag bindings take effect.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewIsolatedLoader creates a loader with its own viper instance, for tests.
func NewIsolatedLoader() *Loader {
	return &Loader{v: viper.New()}
}

// Load reads configuration from the search paths, environment variables, and
// defaults, then validates the result.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return l.unmarshalAndValidate()
}

// LoadWithFile reads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}

	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	return l.unmarshalAndValidate()
}

func (l *Loader) unmarshalAndValidate() (*Config, error) {
	var config Config
	if err := l.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &config, nil
}

// GetViper returns the underlying viper instance for advanced usage.
func (l *Loader) GetViper() *viper.Viper {
	return l.v
}

// GetConfigFileUsed returns the path of the config file used.
func (l *Loader) GetConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// addConfigPaths adds the standard configuration search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")

	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}

	l.v.AddConfigPath("/etc/framecut")

	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "framecut"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "framecut"))
	}
}

// setupEnvironmentVariables configures environment variable handling.
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

// setDefaults sets default values for all configuration options.
func (l *Loader) setDefaults() {
	defaults := DefaultConfig()

	l.v.SetDefault("log_level", defaults.LogLevel)
	l.v.SetDefault("verbose", defaults.Verbose)

	l.v.SetDefault("gallery.max_images", defaults.Gallery.MaxImages)
	l.v.SetDefault("gallery.max_file_bytes", defaults.Gallery.MaxFileBytes)
	l.v.SetDefault("gallery.min_dimension", defaults.Gallery.MinDimension)
	l.v.SetDefault("gallery.max_dimension", defaults.Gallery.MaxDimension)

	l.v.SetDefault("ingest.debounce_delay", defaults.Ingest.DebounceDelay)
	l.v.SetDefault("ingest.notice_flush_delay", defaults.Ingest.NoticeFlushDelay)
	l.v.SetDefault("ingest.validate_timeout", defaults.Ingest.ValidateTimeout)

	l.v.SetDefault("crop.min_size", defaults.Crop.MinSize)
	l.v.SetDefault("crop.max_size", defaults.Crop.MaxSize)
	l.v.SetDefault("crop.save_on_cancel", defaults.Crop.SaveOnCancel)
	l.v.SetDefault("crop.global_memory", defaults.Crop.GlobalMemory)

	l.v.SetDefault("export.output_dir", defaults.Export.OutputDir)
	l.v.SetDefault("export.name_prefix", defaults.Export.NamePrefix)
	l.v.SetDefault("export.jpeg_quality", defaults.Export.JPEGQuality)
}
