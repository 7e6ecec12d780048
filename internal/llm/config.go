// Package llm - config.go holds model tier configuration.
package llm

import "time"

// ModelTier represents the capability level requested for a call.
type ModelTier string

const (
	// TierLite is for simple tasks: classification, short extraction.
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction and moderate reasoning.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for careful rewriting under constraints.
	TierAdvanced ModelTier = "advanced"
)

// DefaultTimeout bounds a single model call unless the caller's context
// already carries a deadline.
const DefaultTimeout = 30 * time.Second

// Config holds the model configuration.
type Config struct {
	Models  map[ModelTier]string
	Timeout time.Duration
}

// DefaultConfig returns the default Gemini tier mapping.
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Timeout: DefaultTimeout,
	}
}

// GetModel returns the model name for a tier, falling back to standard,
// then lite, when the tier has no explicit mapping.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier remapped.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := &Config{
		Models:  make(map[ModelTier]string, len(c.Models)),
		Timeout: c.Timeout,
	}
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return out
}

// ApplyOverrides remaps tiers from a name->model map, as loaded from the
// config file. Unknown tier names are ignored.
func (c *Config) ApplyOverrides(overrides map[string]string) {
	for name, model := range overrides {
		switch ModelTier(name) {
		case TierLite, TierStandard, TierAdvanced:
			c.Models[ModelTier(name)] = model
		}
	}
}
