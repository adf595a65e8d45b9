package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors for configuration fields.
var (
	// ErrTemperatureOutOfRange indicates the temperature is outside [0, 1].
	ErrTemperatureOutOfRange = errors.New("temperature must be between 0 and 1")

	// ErrMissingModel indicates the model identifier is empty.
	ErrMissingModel = errors.New("model must not be empty")

	// ErrInvalidBaseURL indicates the base URL is malformed.
	ErrInvalidBaseURL = errors.New("base_url must start with http:// or https://")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		errs = append(errs, fmt.Errorf("%w: got %v", ErrTemperatureOutOfRange, cfg.Temperature))
	}

	if strings.TrimSpace(cfg.Model) == "" {
		errs = append(errs, ErrMissingModel)
	}

	if cfg.BaseURL != "" &&
		!strings.HasPrefix(cfg.BaseURL, "http://") &&
		!strings.HasPrefix(cfg.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidBaseURL, cfg.BaseURL))
	}

	return errs
}
