package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .ragdoc.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to ragdoc! Let's configure your document index.")
	fmt.Println()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider",
		Items: []string{"openai", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	provider := ProviderType(providerStr)

	preset := GetPreset(provider)

	// 2. Model override.
	modelPrompt := promptui.Prompt{
		Label:   "Answer model",
		Default: preset.Model,
	}
	model, err := modelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("model: %w", err)
	}

	// 3. Data directory for the index and catalog.
	dataDirPrompt := promptui.Prompt{
		Label:   "Data directory for the vector index and catalog",
		Default: ".ragdoc",
	}
	dataDir, err := dataDirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	// 4. Chunking parameters.
	chunkSizePrompt := promptui.Prompt{
		Label:   "Chunk size (characters)",
		Default: "800",
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				return fmt.Errorf("must be a positive integer")
			}
			return nil
		},
	}
	chunkSizeStr, err := chunkSizePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("chunk size: %w", err)
	}
	chunkSize, _ := strconv.Atoi(chunkSizeStr)

	// 5. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	exclude := DefaultExcludes
	if excludeStr != "" {
		exclude = append(exclude, splitAndTrim(excludeStr)...)
	}

	cfg := DefaultConfig()
	cfg.Provider = provider
	cfg.Model = model
	cfg.EmbeddingProvider = embeddingProviderFor(provider)
	cfg.EmbeddingModel = preset.EmbeddingModel
	cfg.ChunkSize = chunkSize
	cfg.DataDir = dataDir
	cfg.Exclude = exclude

	// Check for API key.
	envVar := APIKeyEnvVar(provider)
	if envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running ragdoc ingest.\n", envVar)
	}

	configPath := ".ragdoc.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}

// embeddingProviderFor returns the default embedding provider for a given
// LLM provider.
func embeddingProviderFor(p ProviderType) ProviderType {
	if p == ProviderOllama {
		return ProviderOllama
	}
	return ProviderOpenAI
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
