package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragdoc/ragdoc/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Starts an HTTP server exposing the query, ingest, and document catalog
endpoints over a REST API.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	serveCmd.Flags().Bool("allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	allowAll, _ := cmd.Flags().GetBool("allow-all-origins")

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}

	catalog, err := openCatalog(cfg)
	if err != nil {
		return fmt.Errorf("opening catalog: %w", err)
	}
	defer catalog.Close()

	pipeline, err := buildRetrievalPipeline(cfg, store)
	if err != nil {
		return err
	}
	ingestor, err := buildIngestPipeline(cfg, store, catalog)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{Port: cfg.Port, AllowAll: allowAll}, pipeline, ingestor, catalog)
	return srv.Start()
}
