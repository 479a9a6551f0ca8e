// Package config provides configuration loading and management for ytjbatch.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/norppasoft/ytjbatch/registry"
)

// Config represents the complete ytjbatch configuration
type Config struct {
	Registry RegistryConfig `yaml:"registry"`
	Output   OutputConfig   `yaml:"output"`
}

// RegistryConfig configures the registry client
type RegistryConfig struct {
	// BaseURL is the registry open-data API root
	BaseURL string `yaml:"base_url"`
	// Timeout is the per-request HTTP timeout
	Timeout time.Duration `yaml:"timeout"`
	// MaxAttempts is the total attempt budget for rate-limited requests
	MaxAttempts int `yaml:"max_attempts"`
	// RetryDelay is the fixed wait between rate-limited attempts
	RetryDelay time.Duration `yaml:"retry_delay"`
	// RateInterval is the minimum spacing between requests. Explicit 0
	// disables pacing; a pointer so Merge can tell 0 from unset.
	RateInterval *time.Duration `yaml:"rate_interval"`
}

// OutputConfig configures result rendering
type OutputConfig struct {
	// Delimiter is the CSV field separator (exactly one character)
	Delimiter string `yaml:"delimiter"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	second := time.Second
	return &Config{
		Registry: RegistryConfig{
			BaseURL:      registry.DefaultBaseURL,
			Timeout:      30 * time.Second,
			MaxAttempts:  5,
			RetryDelay:   5 * time.Second,
			RateInterval: &second,
		},
		Output: OutputConfig{
			Delimiter: ";",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Registry.BaseURL == "" {
		return fmt.Errorf("registry.base_url is required")
	}
	if c.Registry.Timeout <= 0 {
		return fmt.Errorf("registry.timeout must be positive")
	}
	if c.Registry.MaxAttempts < 1 {
		return fmt.Errorf("registry.max_attempts must be at least 1")
	}
	if c.Registry.RetryDelay < 0 {
		return fmt.Errorf("registry.retry_delay cannot be negative")
	}
	if c.Registry.RateInterval != nil && *c.Registry.RateInterval < 0 {
		return fmt.Errorf("registry.rate_interval cannot be negative")
	}
	if len([]rune(c.Output.Delimiter)) != 1 {
		return fmt.Errorf("output.delimiter must be exactly one character")
	}
	return nil
}

// DelimiterRune returns the CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	return []rune(c.Output.Delimiter)[0]
}

// RateInterval returns the request pacing interval; 0 disables pacing.
func (c *Config) RateInterval() time.Duration {
	if c.Registry.RateInterval == nil {
		return 0
	}
	return *c.Registry.RateInterval
}

// LoadFromFile loads configuration from a YAML file. Only fields present in
// the file are set; callers layer the result over DefaultConfig via Merge.
func LoadFromFile(path string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Registry
	if other.Registry.BaseURL != "" {
		c.Registry.BaseURL = other.Registry.BaseURL
	}
	if other.Registry.Timeout != 0 {
		c.Registry.Timeout = other.Registry.Timeout
	}
	if other.Registry.MaxAttempts != 0 {
		c.Registry.MaxAttempts = other.Registry.MaxAttempts
	}
	if other.Registry.RetryDelay != 0 {
		c.Registry.RetryDelay = other.Registry.RetryDelay
	}
	if other.Registry.RateInterval != nil {
		c.Registry.RateInterval = other.Registry.RateInterval
	}

	// Output
	if other.Output.Delimiter != "" {
		c.Output.Delimiter = other.Output.Delimiter
	}
}
