package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, DefaultModel, config.GetModel(tier), tier)
	}
}

func TestConfigForModel(t *testing.T) {
	assert.Equal(t, "gemini-2.5-flash", ConfigForModel("gemini-2.5-flash").GetModel(TierAdvanced))
	assert.Equal(t, DefaultModel, ConfigForModel("").GetModel(TierLite))
}

func TestConfigForModel_ExtractionRunsCold(t *testing.T) {
	config := ConfigForModel("")

	advanced, ok := config.Settings(TierAdvanced)
	assert.True(t, ok)
	standard, _ := config.Settings(TierStandard)

	assert.Less(t, advanced.Temperature, standard.Temperature)
	assert.Zero(t, advanced.MaxOutputTokens)
	assert.Positive(t, standard.MaxOutputTokens)
}

func TestSettings_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Tiers: map[ModelTier]TierSettings{
			TierLite:     {Model: "fallback-model", Temperature: 0.3},
			TierAdvanced: {Temperature: 0.1},
		},
	}

	// A tier without a model falls back to standard, then lite
	s, ok := config.Settings(TierAdvanced)
	assert.True(t, ok)
	assert.Equal(t, "fallback-model", s.Model)
	assert.Equal(t, float32(0.3), s.Temperature)
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestSettings_EmptyConfig(t *testing.T) {
	config := &Config{Provider: ProviderGemini}

	_, ok := config.Settings(TierAdvanced)
	assert.False(t, ok)
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}
