package config

import (
	"errors"
	"testing"
	"time"
)

// validConfig returns a config that passes validation.
func validConfig() *Config {
	cfg := NewConfig()
	cfg.Targets = []string{"https://example.com/page"}
	return cfg
}

// TestNewConfig tests default values.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.Concurrency != DefaultConcurrency {
		t.Errorf("Concurrency = %d, want %d", cfg.Concurrency, DefaultConcurrency)
	}
	if cfg.MaxBodySize != DefaultMaxBodySize {
		t.Errorf("MaxBodySize = %d, want %d", cfg.MaxBodySize, DefaultMaxBodySize)
	}
	if cfg.UserAgent == "" {
		t.Error("expected a default user agent")
	}
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config passes",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "no targets",
			mutate:  func(c *Config) { c.Targets = nil },
			wantErr: ErrNoTarget,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Timeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "zero concurrency",
			mutate:  func(c *Config) { c.Concurrency = 0 },
			wantErr: ErrInvalidConcurrency,
		},
		{
			name:    "negative max body size",
			mutate:  func(c *Config) { c.MaxBodySize = -1 },
			wantErr: ErrInvalidMaxBodySize,
		},
		{
			name: "conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

// TestGetSourceConfig tests per-source settings merging.
func TestGetSourceConfig(t *testing.T) {
	t.Parallel()

	file := &File{
		Defaults: SourceConfig{
			Headers: map[string]string{"Accept-Language": "en"},
		},
		Sources: map[string]SourceConfig{
			"cms.example.com": {
				Cookie:  "session=abc",
				Headers: map[string]string{"Authorization": "Bearer x"},
			},
		},
	}

	t.Run("unknown host gets the defaults", func(t *testing.T) {
		t.Parallel()

		sc := file.GetSourceConfig("other.example.com")
		if sc.Cookie != "" {
			t.Errorf("unexpected cookie: %q", sc.Cookie)
		}
		if sc.Headers["Accept-Language"] != "en" {
			t.Error("expected default header to apply")
		}
	})

	t.Run("known host merges over the defaults", func(t *testing.T) {
		t.Parallel()

		sc := file.GetSourceConfig("cms.example.com")
		if sc.Cookie != "session=abc" {
			t.Errorf("unexpected cookie: %q", sc.Cookie)
		}
		if sc.Headers["Authorization"] != "Bearer x" {
			t.Error("expected host header to apply")
		}
		if sc.Headers["Accept-Language"] != "en" {
			t.Error("expected default header to survive the merge")
		}
	})
}
