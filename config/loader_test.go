package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoaderLayering(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	// User config overrides two fields
	writeConfigFile(t, filepath.Join(home, UserConfigDir, UserConfigFile), `registry:
  max_attempts: 3
output:
  delimiter: ","
`)

	// Explicit config overrides one of them again
	explicitPath := filepath.Join(t.TempDir(), "explicit.yaml")
	writeConfigFile(t, explicitPath, `registry:
  max_attempts: 7
`)

	cfg, err := NewLoader(nil).Load(explicitPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Explicit file beats user config
	if cfg.Registry.MaxAttempts != 7 {
		t.Errorf("expected explicit max attempts 7, got %d", cfg.Registry.MaxAttempts)
	}
	// User config survives where the explicit file is silent
	if cfg.Output.Delimiter != "," {
		t.Errorf("expected user delimiter ',', got %q", cfg.Output.Delimiter)
	}
	// Defaults survive where both files are silent
	if cfg.Registry.RetryDelay != 5*time.Second {
		t.Errorf("expected default retry delay 5s, got %s", cfg.Registry.RetryDelay)
	}
	if cfg.Registry.BaseURL == "" {
		t.Error("expected default base URL to survive layering")
	}
}

func TestLoaderExplicitZeroRateInterval(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	explicitPath := filepath.Join(t.TempDir(), "config.yaml")
	writeConfigFile(t, explicitPath, `registry:
  rate_interval: 0
`)

	cfg, err := NewLoader(nil).Load(explicitPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.RateInterval() != 0 {
		t.Errorf("rate_interval: 0 must disable pacing, got %s", cfg.RateInterval())
	}
}

func TestLoaderWithoutAnyConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewLoader(nil).Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	defaults := DefaultConfig()
	if cfg.Registry.BaseURL != defaults.Registry.BaseURL {
		t.Errorf("expected default base URL, got %q", cfg.Registry.BaseURL)
	}
	if cfg.RateInterval() != time.Second {
		t.Errorf("expected default rate interval 1s, got %s", cfg.RateInterval())
	}
}

func TestLoaderMissingExplicitFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := NewLoader(nil).Load(filepath.Join(t.TempDir(), "no-such.yaml"))
	if err == nil {
		t.Error("expected an error for a missing explicit config file")
	}
}

func TestEnsureUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	loader := NewLoader(nil)
	if err := loader.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}

	userPath := filepath.Join(home, UserConfigDir, UserConfigFile)
	if _, err := os.Stat(userPath); err != nil {
		t.Fatalf("expected user config file to exist: %v", err)
	}

	// The written file round-trips into the defaults
	cfg, err := loader.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.MaxAttempts != 5 {
		t.Errorf("expected default max attempts 5, got %d", cfg.Registry.MaxAttempts)
	}

	// A second call leaves an existing file untouched
	writeConfigFile(t, userPath, `registry:
  max_attempts: 9
`)
	if err := loader.EnsureUserConfig(); err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	cfg, err = loader.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Registry.MaxAttempts != 9 {
		t.Errorf("expected existing user config to survive, got max attempts %d", cfg.Registry.MaxAttempts)
	}
}
