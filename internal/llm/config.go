// Package llm provides the model configuration and client abstraction used by the
// AI assistant and the resume importer.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short completions: skill suggestions
	TierLite ModelTier = "lite"
	// TierStandard is for free text generation: summaries, bullet rewrites
	TierStandard ModelTier = "standard"
	// TierAdvanced is for structured extraction from whole documents: import
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider, the only one implemented.
const ProviderGemini Provider = "gemini"

// DefaultModel is used for every tier unless configured otherwise.
const DefaultModel = "gemini-3-flash-preview"

// TierSettings are the generation parameters used for one tier.
type TierSettings struct {
	Model       string
	Temperature float32
	// MaxOutputTokens caps the reply; zero leaves the provider default.
	MaxOutputTokens int32
}

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Tiers    map[ModelTier]TierSettings
}

// DefaultConfig returns the Gemini configuration with DefaultModel.
func DefaultConfig() *Config {
	return ConfigForModel(DefaultModel)
}

// ConfigForModel returns a Gemini configuration that uses model for all tiers.
// An empty model falls back to DefaultModel. Prose tiers run warmer than the
// extraction tier, which must copy the source faithfully.
func ConfigForModel(model string) *Config {
	if model == "" {
		model = DefaultModel
	}
	return &Config{
		Provider: ProviderGemini,
		Tiers: map[ModelTier]TierSettings{
			TierLite:     {Model: model, Temperature: 0.4, MaxOutputTokens: 512},
			TierStandard: {Model: model, Temperature: 0.7, MaxOutputTokens: 1024},
			TierAdvanced: {Model: model, Temperature: 0.1},
		},
	}
}

// Settings returns the settings for tier, falling back to the standard tier
// and then the lite tier. ok is false when none is configured.
func (c *Config) Settings(tier ModelTier) (settings TierSettings, ok bool) {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if s, found := c.Tiers[t]; found && s.Model != "" {
			return s, true
		}
	}
	return TierSettings{}, false
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	s, _ := c.Settings(tier)
	return s.Model
}
