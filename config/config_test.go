package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Registry.BaseURL == "" {
		t.Error("expected a default registry base URL")
	}
	if cfg.Registry.MaxAttempts != 5 {
		t.Errorf("expected default max attempts 5, got %d", cfg.Registry.MaxAttempts)
	}
	if cfg.Registry.RetryDelay != 5*time.Second {
		t.Errorf("expected default retry delay 5s, got %s", cfg.Registry.RetryDelay)
	}
	if cfg.Output.Delimiter != ";" {
		t.Errorf("expected default delimiter ';', got %q", cfg.Output.Delimiter)
	}
	if cfg.RateInterval() != time.Second {
		t.Errorf("expected default rate interval 1s, got %s", cfg.RateInterval())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			modify:  func(c *Config) { c.Registry.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Registry.Timeout = 0 },
			wantErr: true,
		},
		{
			name:    "zero max attempts",
			modify:  func(c *Config) { c.Registry.MaxAttempts = 0 },
			wantErr: true,
		},
		{
			name:    "negative retry delay",
			modify:  func(c *Config) { c.Registry.RetryDelay = -time.Second },
			wantErr: true,
		},
		{
			name: "negative rate interval",
			modify: func(c *Config) {
				negative := -time.Second
				c.Registry.RateInterval = &negative
			},
			wantErr: true,
		},
		{
			name: "zero rate interval disables pacing",
			modify: func(c *Config) {
				zero := time.Duration(0)
				c.Registry.RateInterval = &zero
			},
			wantErr: false,
		},
		{
			name:    "empty delimiter",
			modify:  func(c *Config) { c.Output.Delimiter = "" },
			wantErr: true,
		},
		{
			name:    "multi-character delimiter",
			modify:  func(c *Config) { c.Output.Delimiter = ";;" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `registry:
  base_url: http://localhost:8080
  max_attempts: 3
output:
  delimiter: ","
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Registry.BaseURL != "http://localhost:8080" {
		t.Errorf("expected overridden base URL, got %q", cfg.Registry.BaseURL)
	}
	if cfg.Registry.MaxAttempts != 3 {
		t.Errorf("expected overridden max attempts 3, got %d", cfg.Registry.MaxAttempts)
	}
	if cfg.Output.Delimiter != "," {
		t.Errorf("expected overridden delimiter, got %q", cfg.Output.Delimiter)
	}
	// Fields absent from the file stay unset; the Loader layers defaults in
	if cfg.Registry.RetryDelay != 0 {
		t.Errorf("expected unset retry delay to stay zero, got %s", cfg.Registry.RetryDelay)
	}
	if cfg.Registry.RateInterval != nil {
		t.Errorf("expected unset rate interval to stay nil, got %s", *cfg.Registry.RateInterval)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Registry.MaxAttempts = 7

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	// Verify file was created
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	// Load and verify
	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Registry.MaxAttempts != 7 {
		t.Errorf("expected max attempts 7, got %d", loaded.Registry.MaxAttempts)
	}
	if loaded.Registry.BaseURL != cfg.Registry.BaseURL {
		t.Errorf("expected base URL %q, got %q", cfg.Registry.BaseURL, loaded.Registry.BaseURL)
	}
	if loaded.RateInterval() != time.Second {
		t.Errorf("expected rate interval 1s, got %s", loaded.RateInterval())
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	other := &Config{}
	other.Registry.BaseURL = "http://localhost:9090"
	other.Registry.MaxAttempts = 2

	base.Merge(other)

	if base.Registry.BaseURL != "http://localhost:9090" {
		t.Errorf("expected merged base URL, got %q", base.Registry.BaseURL)
	}
	if base.Registry.MaxAttempts != 2 {
		t.Errorf("expected merged max attempts 2, got %d", base.Registry.MaxAttempts)
	}
	if base.Registry.RetryDelay != 5*time.Second {
		t.Errorf("zero values must not clobber defaults, got %s", base.Registry.RetryDelay)
	}
	if base.Output.Delimiter != ";" {
		t.Errorf("zero values must not clobber defaults, got %q", base.Output.Delimiter)
	}
}

func TestConfigMerge_ExplicitZeroRateInterval(t *testing.T) {
	base := DefaultConfig()

	zero := time.Duration(0)
	other := &Config{}
	other.Registry.RateInterval = &zero

	base.Merge(other)

	if base.RateInterval() != 0 {
		t.Errorf("explicit zero must disable pacing, got %s", base.RateInterval())
	}

	// A config that never mentions the field leaves the default alone
	base = DefaultConfig()
	base.Merge(&Config{})
	if base.RateInterval() != time.Second {
		t.Errorf("unset rate interval must keep the default, got %s", base.RateInterval())
	}
}

func TestDelimiterRune(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.DelimiterRune() != ';' {
		t.Errorf("expected ';', got %q", cfg.DelimiterRune())
	}

	cfg.Output.Delimiter = "\t"
	if cfg.DelimiterRune() != '\t' {
		t.Errorf("expected tab, got %q", cfg.DelimiterRune())
	}
}
