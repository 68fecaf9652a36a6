// Package config provides configuration loading and validation for the CLI.
// Behavior knobs come from a JSON file merged with flag values; credentials
// come from the environment only, so they never end up in a config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Environment variables holding the login credentials.
const (
	EnvIdentifier = "HARVESTER_EMAIL"
	EnvSecret     = "HARVESTER_PASSWORD"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Paths
	Input   string `json:"input,omitempty"`    // CSV file with target URLs in the first column
	Output  string `json:"output,omitempty"`   // CSV file the records are written to
	LogFile string `json:"log_file,omitempty"` // Optional log file, duplicated with console output

	// Endpoints
	BaseURL  string `json:"base_url,omitempty" validate:"omitempty,url"`  // Resolves relative targets like /in/alice
	LoginURL string `json:"login_url,omitempty" validate:"omitempty,url"` // Login form location

	// Behavior
	Headless    *bool  `json:"headless,omitempty"`    // Run the browser headless; nil when the file omits it
	Verbose     bool   `json:"verbose,omitempty"`     // Log per-section verdicts
	Workers     int    `json:"workers,omitempty" validate:"omitempty,min=1,max=8"` // Independent sessions; 1 = sequential baseline
	DatabaseURL string `json:"database_url,omitempty"`                             // Optional PostgreSQL audit store

	// Timings, all in milliseconds
	ReadyTimeoutMs int `json:"ready_timeout_ms,omitempty" validate:"omitempty,min=100"`
	SettleDelayMs  int `json:"settle_delay_ms,omitempty" validate:"omitempty,min=0"`
	RetryBackoffMs int `json:"retry_backoff_ms,omitempty" validate:"omitempty,min=0"`
	TargetDelayMs  int `json:"target_delay_ms,omitempty" validate:"omitempty,min=0"` // Politeness pause between targets
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field-level constraints. Required fields are enforced by
// CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Input == "" {
		result.Input = defaults.Input
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}
	if result.BaseURL == "" {
		result.BaseURL = defaults.BaseURL
	}
	if result.LoginURL == "" {
		result.LoginURL = defaults.LoginURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.ReadyTimeoutMs == 0 {
		result.ReadyTimeoutMs = defaults.ReadyTimeoutMs
	}
	if result.SettleDelayMs == 0 {
		result.SettleDelayMs = defaults.SettleDelayMs
	}
	if result.RetryBackoffMs == 0 {
		result.RetryBackoffMs = defaults.RetryBackoffMs
	}
	if result.TargetDelayMs == 0 {
		result.TargetDelayMs = defaults.TargetDelayMs
	}

	if result.Headless == nil {
		result.Headless = defaults.Headless
	}

	// Verbose can't distinguish unset from false; the CLI flag always wins.

	return result
}

// CredentialsFromEnv reads the login credentials. Both variables must be set;
// there is no interactive fallback.
func CredentialsFromEnv() (identifier, secret string, err error) {
	identifier = os.Getenv(EnvIdentifier)
	secret = os.Getenv(EnvSecret)
	if identifier == "" || secret == "" {
		return "", "", fmt.Errorf("credentials required: set %s and %s environment variables", EnvIdentifier, EnvSecret)
	}
	return identifier, secret, nil
}
