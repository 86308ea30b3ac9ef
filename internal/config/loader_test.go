package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
apiKey: abc123
zip: "60601"
units: metric
interval: 10m
baseUrl: http://localhost:8080
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", cfg.APIKey)
	assert.Equal(t, "60601", cfg.Zip)
	assert.Equal(t, "metric", cfg.Units)
	assert.Equal(t, 10*time.Minute, cfg.Interval)
	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
}

func TestLoadConfigDefaultsInterval(t *testing.T) {
	path := writeConfig(t, `
apiKey: abc123
zip: "60601"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, cfg.Interval)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "apiKey: [unclosed")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInterval, cfg.Interval)

	cfg, err = LoadOrDefault(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.APIKey)

	path := writeConfig(t, "apiKey: [unclosed")
	_, err = LoadOrDefault(path)
	assert.Error(t, err)
}
