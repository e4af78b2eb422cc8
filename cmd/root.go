// Package cmd implements the ragdoc command line interface.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ragdoc",
	Short: "Document ingestion and question answering over a local vector index",
	Long: `Ragdoc chunks PDF, Markdown, and text documents into a local vector
index and answers natural language questions from them, combining
semantic similarity with chapter, page, and source metadata. It also
serves the index over HTTP and exposes it to AI agents via MCP.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// API keys are commonly kept in a .env file; absence is fine.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".ragdoc.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
