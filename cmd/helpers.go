package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ragdoc/ragdoc/internal/chunker"
	"github.com/ragdoc/ragdoc/internal/config"
	"github.com/ragdoc/ragdoc/internal/db"
	"github.com/ragdoc/ragdoc/internal/embeddings"
	"github.com/ragdoc/ragdoc/internal/ingest"
	"github.com/ragdoc/ragdoc/internal/llm"
	"github.com/ragdoc/ragdoc/internal/retrieval"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// catalogFile is the SQLite ingestion catalog inside the data directory.
const catalogFile = "catalog.db"

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ragdoc init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.EmbeddingProvider
	if provider == "" {
		provider = cfg.Provider
	}
	model := cfg.EmbeddingModel
	if model == "" {
		model = config.GetPreset(provider).EmbeddingModel
	}

	switch provider {
	case config.ProviderOllama:
		return embeddings.NewOllamaEmbedder(model, 768, ""), nil
	default:
		apiKey := os.Getenv(config.APIKeyEnvVar(config.ProviderOpenAI))
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for OpenAI embeddings")
		}
		return embeddings.NewOpenAIEmbedder(apiKey, embeddings.OpenAIModel(model)), nil
	}
}

// createGeneratorFromConfig creates the answer generator from config settings.
func createGeneratorFromConfig(cfg *config.Config) (*llm.Generator, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.Model)
	if err != nil {
		return nil, err
	}
	return llm.NewGenerator(provider, cfg.Model), nil
}

// openStore creates the vector store and loads any persisted index from the
// data directory. A missing index is not an error; the store starts empty.
func openStore(ctx context.Context, cfg *config.Config) (vectordb.VectorStore, error) {
	store, err := vectordb.NewChromemStore()
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	if err := store.Load(ctx, cfg.DataDir); err != nil {
		if verbose {
			fmt.Fprintf(os.Stderr, "no persisted index in %s: %v\n", cfg.DataDir, err)
		}
	}
	return store, nil
}

// openCatalog opens the SQLite ingestion catalog in the data directory.
func openCatalog(cfg *config.Config) (*db.DB, error) {
	return db.Open(filepath.Join(cfg.DataDir, catalogFile))
}

// buildIngestPipeline wires the full ingestion pipeline from config.
func buildIngestPipeline(cfg *config.Config, store vectordb.VectorStore, catalog *db.DB) (*ingest.Pipeline, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	splitter := chunker.NewSplitter(cfg.ChunkSize, cfg.ChunkOverlap)
	return ingest.New(ingest.NewLoader(), splitter, embedder, store, catalog), nil
}

// buildRetrievalPipeline wires the full retrieval pipeline from config.
func buildRetrievalPipeline(cfg *config.Config, store vectordb.VectorStore) (*retrieval.Pipeline, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	generator, err := createGeneratorFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return retrieval.NewPipeline(embedder, store, generator, cfg.TopK), nil
}
