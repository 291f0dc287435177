// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Resume string `json:"resume,omitempty"` // Path to resume PDF or text file
	Output string `json:"output,omitempty"` // Path for the fixed PDF

	// Behavior
	APIKey         string  `json:"api_key,omitempty"`        // Gemini API key
	SkipRewrite    bool    `json:"skip_rewrite,omitempty"`   // Use input text as-is, no LLM call
	Aggressiveness float64 `json:"aggressiveness,omitempty"` // Hybrid-tier styling scale (0.5-1.0)
	Verbose        bool    `json:"verbose,omitempty"`        // Print detailed debug information

	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
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

// Validate checks that the configuration has valid values. Required fields
// are enforced by CLI flag validation after merging, not here.
func (c *Config) Validate() error {
	if c.Aggressiveness != 0 && (c.Aggressiveness < 0.5 || c.Aggressiveness > 1.0) {
		return fmt.Errorf("config error: 'aggressiveness' must be between 0.5 and 1.0")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from
// defaults. Bool fields are not merged; CLI flags always win for those.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Aggressiveness == 0 {
		if defaults.Aggressiveness > 0 {
			result.Aggressiveness = defaults.Aggressiveness
		} else {
			result.Aggressiveness = 1.0
		}
	}

	return result
}
