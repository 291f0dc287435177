// Package llm abstracts the LLM provider behind a small client interface.
// The rewriter picks a model tier per request based on how much
// restructuring the resume needs.
package llm

// ModelTier represents the capability level requested for a generation.
type ModelTier string

const (
	// TierLite handles light touch-ups: phrasing fixes, keyword injection.
	TierLite ModelTier = "lite"
	// TierStandard handles moderate rewrites within the existing structure.
	TierStandard ModelTier = "standard"
	// TierAdvanced handles aggressive restructuring of weak resumes.
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM backend.
type Provider string

// ProviderGemini is the only wired provider; the Client interface leaves
// room for others.
const ProviderGemini Provider = "gemini"

// Config selects the provider and its per-tier model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the Gemini defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel resolves the model name for a tier, falling back to standard and
// then lite when the tier has no explicit entry.
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

// WithModel returns a copy of the config with one tier overridden.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{Provider: c.Provider, Models: make(map[ModelTier]string, len(c.Models)+1)}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
