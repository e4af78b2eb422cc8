package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ragdoc/ragdoc/internal/ingest"
	"github.com/ragdoc/ragdoc/internal/progress"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest documents into the vector index",
	Long: `Reads the file, directory, or URL at the given path, chunks its text,
computes embeddings, and stores them in the local vector index. PDFs keep
their page numbers; chapter and section headings are detected per chunk.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().String("source", "", "logical source name recorded in the catalog (default: the path)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	root := args[0]

	source, _ := cmd.Flags().GetString("source")
	if source == "" {
		source = root
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	pipeline, err := buildIngestPipeline(cfg, store, catalog)
	if err != nil {
		return err
	}

	// A URL is handed straight to the loader; local paths are discovered.
	var docs []ingest.Document
	if isURL(root) {
		docs = []ingest.Document{{Source: source, FilePath: root}}
	} else {
		files, err := ingest.Discover(root, cfg.Include, cfg.Exclude)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("No ingestable files found.")
			return nil
		}
		for _, f := range files {
			docs = append(docs, ingest.Document{Source: source, FilePath: f})
		}
	}

	reporter := progress.NewReporter()
	reporter.Start(len(docs))
	batcher := ingest.NewBatcher(cfg.MaxConcurrency, pipeline, func(processed, total int, currentFile string) {
		reporter.Update(processed, filepath.Base(currentFile))
	})

	result := batcher.Ingest(ctx, docs)
	reporter.Finish()

	if err := store.Persist(ctx, cfg.DataDir); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	fmt.Printf("Ingested %d document(s), %d chunk(s) into %s\n",
		len(result.Results), result.TotalChunks(), cfg.DataDir)
	if len(result.Errors) > 0 {
		fmt.Printf("%d document(s) failed:\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  %v\n", e)
		}
		return fmt.Errorf("%d of %d documents failed", len(result.Errors), len(docs))
	}
	return nil
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
