// Package config provides configuration management for mdmeta using Viper.
package config

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// AppName is the application name used for config file naming.
const AppName = "mdmeta"

// Defaults applied when neither flag, environment, nor config file sets a value.
const (
	DefaultModel       = "gpt-4o-2024-05-13"
	DefaultTemperature = 0.7
	DefaultBaseURL     = "https://api.openai.com/v1"
)

// Config represents the top-level configuration structure.
type Config struct {
	// Model is the completion endpoint's model identifier.
	Model string `mapstructure:"model" yaml:"model"`

	// Temperature is the sampling temperature in [0, 1].
	Temperature float64 `mapstructure:"temperature" yaml:"temperature"`

	// BaseURL is the completion endpoint, overridable for compatible gateways.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// APIKey is the completion credential. It comes from the environment
	// (OPENAI_API_KEY), never from the config file, and is handed to the
	// client constructor explicitly.
	APIKey string `mapstructure:"api_key" yaml:"-"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(filepath.Join(xdg.ConfigHome, AppName))

	// Environment variable support
	viper.SetEnvPrefix("MDMETA")
	viper.AutomaticEnv()

	// The credential always comes from the environment.
	_ = viper.BindEnv("api_key", "OPENAI_API_KEY")

	// Defaults
	viper.SetDefault("model", DefaultModel)
	viper.SetDefault("temperature", DefaultTemperature)
	viper.SetDefault("base_url", DefaultBaseURL)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns the loaded configuration or default values if no file is found (when path is empty).
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		// If config file not found...
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// If user specified a path, this is an error
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Otherwise (implicit load), it's fine to use defaults
		} else {
			// Real read error (parsing, permissions, etc)
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errs[0]
	}

	return &cfg, nil
}
