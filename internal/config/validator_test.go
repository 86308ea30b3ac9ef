package config

import (
	"testing"
	"time"
)

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantPaths []string
	}{
		{
			name:   "valid",
			config: Config{APIKey: "k", Zip: "60601", Interval: time.Minute},
		},
		{
			name:      "missing key and zip",
			config:    Config{Interval: time.Minute},
			wantPaths: []string{"apiKey", "zip"},
		},
		{
			name:      "interval too small",
			config:    Config{APIKey: "k", Zip: "z", Interval: 500 * time.Millisecond},
			wantPaths: []string{"interval"},
		},
		{
			name:      "bad units",
			config:    Config{APIKey: "k", Zip: "z", Units: "kelvin", Interval: time.Minute},
			wantPaths: []string{"units"},
		},
		{
			name:   "metric units accepted",
			config: Config{APIKey: "k", Zip: "z", Units: "metric", Interval: time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfig(&tt.config)
			if len(errs) != len(tt.wantPaths) {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(tt.wantPaths))
			}
			for i, path := range tt.wantPaths {
				if errs[i].Path != path {
					t.Errorf("error %d path = %q, want %q", i, errs[i].Path, path)
				}
				if errs[i].Error() == "" {
					t.Errorf("error %d has empty message", i)
				}
			}
		})
	}
}
