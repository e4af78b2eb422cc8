package config

// ProviderPreset describes the default models for a provider.
type ProviderPreset struct {
	Model          string
	EmbeddingModel string
}

// providerPresets maps each provider to its default model choices.
var providerPresets = map[ProviderType]ProviderPreset{
	ProviderOpenAI: {Model: "gpt-4o-mini", EmbeddingModel: "text-embedding-3-small"},
	ProviderOllama: {Model: "llama3", EmbeddingModel: "nomic-embed-text"},
}

// DefaultExcludes are glob patterns excluded from document discovery by
// default.
var DefaultExcludes = []string{
	"vendor/**",
	"node_modules/**",
	".git/**",
	"dist/**",
	"build/**",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider:          ProviderOpenAI,
		Model:             "gpt-4o-mini",
		EmbeddingProvider: ProviderOpenAI,
		EmbeddingModel:    "text-embedding-3-small",
		ChunkSize:         800,
		ChunkOverlap:      100,
		TopK:              5,
		DataDir:           ".ragdoc",
		Port:              8080,
		MaxConcurrency:    5,
		Exclude:           DefaultExcludes,
	}
}

// GetPreset returns the default models for the given provider, falling back
// to the OpenAI preset when the provider is not recognized.
func GetPreset(provider ProviderType) ProviderPreset {
	if preset, ok := providerPresets[provider]; ok {
		return preset
	}
	return providerPresets[ProviderOpenAI]
}
