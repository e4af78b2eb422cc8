package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ragdoc/ragdoc/internal/retrieval"
)

// handleSearchDocuments performs semantic search over the document index.
func (s *Server) handleSearchDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", retrieval.DefaultTopK)
	if limit <= 0 {
		limit = retrieval.DefaultTopK
	}

	results, err := s.pipeline.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The index may be empty; run `ragdoc ingest` to add documents."), nil
	}

	return mcp.NewToolResultText(retrieval.FormatResults(results)), nil
}

// handleAskQuestion answers a question from the ingested documents.
func (s *Server) handleAskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: question"), nil
	}

	topK := request.GetInt("top_k", retrieval.DefaultTopK)

	answer := s.pipeline.Query(ctx, question, topK)
	if answer.Err {
		return mcp.NewToolResultError(answer.Text), nil
	}

	return mcp.NewToolResultText(formatAnswer(answer)), nil
}

// formatAnswer renders the answer followed by the passages it was grounded
// on, so agents can verify the citations.
func formatAnswer(answer retrieval.Answer) string {
	var sb strings.Builder
	sb.WriteString(answer.Text)

	if answer.NumChunks == 0 {
		return sb.String()
	}

	sb.WriteString("\n\nSources:\n")
	for i, m := range answer.Metadata {
		location := m.SourceFile
		if m.Page > 0 {
			location += fmt.Sprintf(", page %d", m.Page)
		}
		if m.Chapter != "" {
			location += fmt.Sprintf(", chapter %s", m.Chapter)
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, location))
	}

	return sb.String()
}
