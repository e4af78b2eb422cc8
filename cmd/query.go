package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ragdoc/ragdoc/internal/retrieval"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question against the ingested documents",
	Long: `Embeds the question, retrieves the best-matching chunks from the vector
index, reranks them by chapter, page, and source metadata, and generates
an answer grounded in those chunks.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().Int("top-k", 0, "number of chunks to ground the answer on (default from config)")
	queryCmd.Flags().Bool("json", false, "output the full answer as JSON")
	queryCmd.Flags().Bool("search-only", false, "print the ranked chunks without generating an answer")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	question := args[0]

	topK, _ := cmd.Flags().GetInt("top-k")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	searchOnly, _ := cmd.Flags().GetBool("search-only")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if store.Count() == 0 {
		fmt.Println("The index is empty. Run `ragdoc ingest` first.")
		return nil
	}

	pipeline, err := buildRetrievalPipeline(cfg, store)
	if err != nil {
		return err
	}

	if searchOnly {
		results, err := pipeline.Search(ctx, question, topK)
		if err != nil {
			return err
		}
		fmt.Print(retrieval.FormatResults(results))
		return nil
	}

	answer := pipeline.Query(ctx, question, topK)

	if jsonOutput {
		return printAnswerJSON(answer)
	}
	printAnswer(answer)
	return nil
}

type answerJSON struct {
	Question  string                   `json:"question"`
	Answer    string                   `json:"answer"`
	Context   []string                 `json:"context"`
	Scores    []float64                `json:"scores,omitempty"`
	Metadata  []vectordb.ChunkMetadata `json:"metadata,omitempty"`
	NumChunks int                      `json:"num_chunks"`
	Error     bool                     `json:"error,omitempty"`
}

func printAnswerJSON(answer retrieval.Answer) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(answerJSON{
		Question:  answer.Question,
		Answer:    answer.Text,
		Context:   answer.Context,
		Scores:    answer.Scores,
		Metadata:  answer.Metadata,
		NumChunks: answer.NumChunks,
		Error:     answer.Err,
	})
}

func printAnswer(answer retrieval.Answer) {
	fmt.Println(answer.Text)

	if answer.NumChunks == 0 || !verbose {
		return
	}

	fmt.Printf("\nBased on %d chunk(s):\n", answer.NumChunks)
	for i, m := range answer.Metadata {
		location := m.SourceFile
		if m.Page > 0 {
			location = fmt.Sprintf("%s, page %d", location, m.Page)
		}
		fmt.Printf("  %d. [%.4f] %s\n", i+1, answer.Scores[i], location)
	}
}
