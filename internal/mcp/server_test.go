package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ragdoc/ragdoc/internal/llm"
	"github.com/ragdoc/ragdoc/internal/retrieval"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// mockEmbedder implements embeddings.Embedder for testing.
type mockEmbedder struct{}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = []float32{1, 0, 0}
	}
	return result, nil
}
func (m *mockEmbedder) Dimensions() int { return 3 }
func (m *mockEmbedder) Name() string    { return "mock" }

// mockStore implements vectordb.VectorStore for testing.
type mockStore struct {
	docs []vectordb.Document
}

func (m *mockStore) Insert(_ context.Context, docs []vectordb.Document) error {
	m.docs = append(m.docs, docs...)
	return nil
}

func (m *mockStore) Query(_ context.Context, _ []float32, k int, _ *vectordb.QueryFilter) ([]vectordb.Candidate, error) {
	var results []vectordb.Candidate
	for _, doc := range m.docs {
		results = append(results, vectordb.Candidate{
			Text:     doc.Text,
			Distance: 0.1,
			Metadata: doc.Metadata,
		})
		if len(results) >= k {
			break
		}
	}
	return results, nil
}

func (m *mockStore) Persist(_ context.Context, _ string) error { return nil }
func (m *mockStore) Load(_ context.Context, _ string) error    { return nil }
func (m *mockStore) Count() int                                { return len(m.docs) }

// mockProvider returns a fixed completion.
type mockProvider struct{}

func (mockProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	return &llm.CompletionResponse{Content: "the answer"}, nil
}
func (mockProvider) Name() string { return "mock" }

func newTestPipeline(store vectordb.VectorStore) *retrieval.Pipeline {
	generator := llm.NewGenerator(mockProvider{}, "test-model")
	return retrieval.NewPipeline(&mockEmbedder{}, store, generator, 5)
}

func toolText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("empty tool result content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	return text.Text
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_documents", searchDocumentsTool, "search_documents"},
		{"ask_question", askQuestionTool, "ask_question"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := NewServer(newTestPipeline(&mockStore{}))

	if srv == nil {
		t.Fatal("NewServer returned nil")
	}
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.pipeline == nil {
		t.Error("pipeline not set")
	}
}

func TestHandleSearchDocuments(t *testing.T) {
	store := &mockStore{
		docs: []vectordb.Document{
			{
				ID:   "1",
				Text: "Members may enroll during open season.",
				Metadata: vectordb.ChunkMetadata{
					SourceFile: "member-guide.pdf",
					Page:       3,
					Chapter:    "2",
				},
			},
		},
	}
	srv := NewServer(newTestPipeline(store))
	ctx := context.Background()

	t.Run("basic search", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query": "enrollment",
		}

		result, err := srv.handleSearchDocuments(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := toolText(t, result)
		for _, want := range []string{"member-guide.pdf", "page 3", "Members may enroll"} {
			if !strings.Contains(text, want) {
				t.Errorf("result missing %q:\n%s", want, text)
			}
		}
	})

	t.Run("missing query", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleSearchDocuments(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing query")
		}
	})

	t.Run("empty store", func(t *testing.T) {
		emptySrv := NewServer(newTestPipeline(&mockStore{}))
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"query": "anything",
		}

		result, err := emptySrv.handleSearchDocuments(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Error("empty results should not be an error")
		}
		if !strings.Contains(toolText(t, result), "No results found") {
			t.Error("expected no-results message")
		}
	})
}

func TestHandleAskQuestion(t *testing.T) {
	store := &mockStore{
		docs: []vectordb.Document{
			{
				ID:       "1",
				Text:     "Claims must be filed within 90 days.",
				Metadata: vectordb.ChunkMetadata{SourceFile: "claims.pdf", Page: 12},
			},
		},
	}
	srv := NewServer(newTestPipeline(store))
	ctx := context.Background()

	t.Run("answers with sources", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"question": "when must claims be filed",
		}

		result, err := srv.handleAskQuestion(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := toolText(t, result)
		if !strings.Contains(text, "the answer") {
			t.Errorf("missing generated answer: %q", text)
		}
		if !strings.Contains(text, "claims.pdf, page 12") {
			t.Errorf("missing source citation: %q", text)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleAskQuestion(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing question")
		}
	})

	t.Run("unavailable pipeline reports error", func(t *testing.T) {
		srv := NewServer(retrieval.NewPipeline(nil, nil, nil, 5))
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{
			"question": "anything",
		}

		result, err := srv.handleAskQuestion(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected tool error from unavailable pipeline")
		}
	})
}
