// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Weights configures the matcher's component weights. They need not sum
// to 1; the matcher normalizes by the total.
type Weights struct {
	Required   float64 `json:"required,omitempty"`
	Preferred  float64 `json:"preferred,omitempty"`
	Experience float64 `json:"experience,omitempty"`
}

// Config is the tool configuration, loadable from a JSON file. All
// fields are optional; missing values fall back to defaults, and the
// API key may come from the environment instead.
type Config struct {
	// Credentials and transport
	APIKey string `json:"api_key,omitempty"` // Gemini API key (env GEMINI_API_KEY wins when set)
	Port   int    `json:"port,omitempty"`    // HTTP listen port for serve mode

	// Model behavior
	ModelTimeoutSec int               `json:"model_timeout_sec,omitempty"` // Per-call deadline for model requests
	MaxRetries      int               `json:"max_retries,omitempty"`       // Bounded retries on malformed model output
	Models          map[string]string `json:"models,omitempty"`            // Tier name -> model name overrides

	// Matching
	Weights      Weights `json:"weights,omitempty"`       // Matcher component weights
	SynonymsFile string  `json:"synonyms_file,omitempty"` // Path to a synonym table JSON, replaces the built-in one

	// Output
	Verbose  bool `json:"verbose,omitempty"`
	JSONLogs bool `json:"json_logs,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Port:            8080,
		ModelTimeoutSec: 30,
		MaxRetries:      2,
		Weights:         Weights{Required: 0.6, Preferred: 0.2, Experience: 0.2},
	}
}

// Load reads configuration from a JSON file and merges it over the
// defaults. An empty path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
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

	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	cfg = cfg.merge(loaded)
	return &cfg, nil
}

// ApplyEnv overlays environment values: GEMINI_API_KEY and PORT. The
// environment wins over the file so deployments can rotate keys without
// editing config.
func (c *Config) ApplyEnv() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.APIKey = key
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Port = p
		}
	}
}

// Validate checks that the configuration has usable values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be in 1..65535")
	}
	if c.ModelTimeoutSec <= 0 {
		return fmt.Errorf("config error: 'model_timeout_sec' must be positive")
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("config error: 'max_retries' must be non-negative")
	}
	w := c.Weights
	if w.Required < 0 || w.Preferred < 0 || w.Experience < 0 {
		return fmt.Errorf("config error: weights must be non-negative")
	}
	if w.Required+w.Preferred+w.Experience == 0 {
		return fmt.Errorf("config error: at least one weight must be positive")
	}
	if c.SynonymsFile != "" {
		if _, err := os.Stat(c.SynonymsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: synonyms file not found: %s", c.SynonymsFile)
		}
	}
	return nil
}

// merge overlays loaded values on top of the receiver. Zero values keep
// the receiver's value; bools come from the loaded config as-is since
// flags re-assert them after loading.
func (c Config) merge(loaded Config) Config {
	result := c

	if loaded.APIKey != "" {
		result.APIKey = loaded.APIKey
	}
	if loaded.Port != 0 {
		result.Port = loaded.Port
	}
	if loaded.ModelTimeoutSec != 0 {
		result.ModelTimeoutSec = loaded.ModelTimeoutSec
	}
	if loaded.MaxRetries != 0 {
		result.MaxRetries = loaded.MaxRetries
	}
	if loaded.Models != nil {
		result.Models = loaded.Models
	}
	if loaded.SynonymsFile != "" {
		result.SynonymsFile = loaded.SynonymsFile
	}
	if w := loaded.Weights; w.Required != 0 || w.Preferred != 0 || w.Experience != 0 {
		result.Weights = w
	}
	result.Verbose = loaded.Verbose
	result.JSONLogs = loaded.JSONLogs

	return result
}
