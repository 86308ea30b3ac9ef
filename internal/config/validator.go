package config

import (
	"fmt"
	"time"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Path    string
	Message string
}

// Error returns the error message
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateConfig validates a configuration for the watch command, which
// needs an API key and a location and refuses sub-second intervals.
func ValidateConfig(config *Config) []ValidationError {
	var errors []ValidationError

	if config.APIKey == "" {
		errors = append(errors, ValidationError{
			Path:    "apiKey",
			Message: "an openweathermap.org API key is required",
		})
	}

	if config.Zip == "" {
		errors = append(errors, ValidationError{
			Path:    "zip",
			Message: "a zipcode is required",
		})
	}

	if config.Units != "" && config.Units != "imperial" && config.Units != "metric" {
		errors = append(errors, ValidationError{
			Path:    "units",
			Message: fmt.Sprintf("must be \"imperial\" or \"metric\", got %q", config.Units),
		})
	}

	if config.Interval < time.Second {
		errors = append(errors, ValidationError{
			Path:    "interval",
			Message: "must be at least 1s",
		})
	}

	return errors
}
