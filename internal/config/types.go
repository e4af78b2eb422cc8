package config

// ProviderType identifies an LLM or embedding provider.
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level ragdoc configuration, corresponding to .ragdoc.yml.
type Config struct {
	Provider          ProviderType `yaml:"provider" koanf:"provider"`
	Model             string       `yaml:"model" koanf:"model"`
	EmbeddingProvider ProviderType `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string       `yaml:"embedding_model" koanf:"embedding_model"`
	ChunkSize         int          `yaml:"chunk_size" koanf:"chunk_size"`
	ChunkOverlap      int          `yaml:"chunk_overlap" koanf:"chunk_overlap"`
	TopK              int          `yaml:"top_k" koanf:"top_k"`
	DataDir           string       `yaml:"data_dir" koanf:"data_dir"`
	Port              int          `yaml:"port" koanf:"port"`
	MaxConcurrency    int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	Include           []string     `yaml:"include" koanf:"include"`
	Exclude           []string     `yaml:"exclude" koanf:"exclude"`
}
