// Package config loads the widget's YAML configuration file. Flags
// override anything loaded here; the file just keeps the API key and
// location out of shell history.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultInterval is how often conditions are refreshed when the config
// and flags don't say otherwise.
const DefaultInterval = 30 * time.Minute

// Config represents the wxterm configuration
type Config struct {
	APIKey   string        `yaml:"apiKey"`
	Zip      string        `yaml:"zip"`
	Units    string        `yaml:"units,omitempty"` // "imperial" or "metric"
	Interval time.Duration `yaml:"-"`
	BaseURL  string        `yaml:"baseUrl,omitempty"`
}

// UnmarshalYAML decodes the config, accepting the interval as a duration
// string like "30m" (yaml has no native duration form).
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		APIKey   string `yaml:"apiKey"`
		Zip      string `yaml:"zip"`
		Units    string `yaml:"units"`
		Interval string `yaml:"interval"`
		BaseURL  string `yaml:"baseUrl"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.APIKey = raw.APIKey
	c.Zip = raw.Zip
	c.Units = raw.Units
	c.BaseURL = raw.BaseURL
	if raw.Interval != "" {
		interval, err := time.ParseDuration(raw.Interval)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", raw.Interval, err)
		}
		c.Interval = interval
	}
	return nil
}

// DefaultPath returns the conventional config file location,
// $XDG_CONFIG_HOME/wxterm/config.yaml.
func DefaultPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wxterm", "config.yaml")
}

// LoadConfig loads a configuration file
func LoadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	config := &Config{Interval: DefaultInterval}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return config, nil
}

// LoadOrDefault loads path when it exists and falls back to an empty
// config with defaults when it doesn't. A malformed file is still an
// error.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return &Config{Interval: DefaultInterval}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{Interval: DefaultInterval}, nil
	}
	return LoadConfig(path)
}
