package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mcpserver "github.com/ragdoc/ragdoc/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing document
search and question answering tools for AI agents.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Fprintln(os.Stderr, "Warning: the index is empty; run `ragdoc ingest` first.")
	}

	pipeline, err := buildRetrievalPipeline(cfg, store)
	if err != nil {
		return err
	}

	mcpserver.Version = Version
	fmt.Fprintf(os.Stderr, "ragdoc MCP server started on stdio (chunks=%d)\n", store.Count())

	srv := mcpserver.NewServer(pipeline)
	return srv.Serve()
}
