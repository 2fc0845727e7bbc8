// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs and outputs
	Registry string `json:"registry,omitempty"` // Path to a country registry JSON file
	OutDir   string `json:"out_dir,omitempty"`  // Directory for visa_data.json and import files

	// Extraction service
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Model used for structured extraction

	// Fetching
	Delay      string `json:"delay,omitempty"`       // Pause between countries, e.g. "2s"
	UserAgent  string `json:"user_agent,omitempty"`  // User agent sent to government sites
	UseBrowser bool   `json:"use_browser,omitempty"` // Re-render thin pages in headless Chrome

	// Outputs
	NoImportScript bool `json:"no_import_script,omitempty"` // Skip sanity_import.js
	NDJSON         bool `json:"ndjson,omitempty"`           // Also write visa_data.ndjson

	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
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

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Delay != "" {
		d, err := time.ParseDuration(c.Delay)
		if err != nil {
			return fmt.Errorf("config error: invalid 'delay' %q: %w", c.Delay, err)
		}
		if d < 0 {
			return fmt.Errorf("config error: 'delay' must be non-negative")
		}
	}

	if c.Registry != "" {
		if _, err := os.Stat(c.Registry); os.IsNotExist(err) {
			return fmt.Errorf("config error: registry file not found: %s", c.Registry)
		}
	}

	return nil
}

// DelayDuration returns the parsed delay, or zero when unset or invalid.
func (c *Config) DelayDuration() time.Duration {
	d, err := time.ParseDuration(c.Delay)
	if err != nil {
		return 0
	}
	return d
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Registry == "" {
		result.Registry = defaults.Registry
	}
	if result.OutDir == "" {
		result.OutDir = defaults.OutDir
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Delay == "" {
		result.Delay = defaults.Delay
	}
	if result.UserAgent == "" {
		result.UserAgent = defaults.UserAgent
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
