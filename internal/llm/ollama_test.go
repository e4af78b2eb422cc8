package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaComplete(t *testing.T) {
	var gotReq ollamaChatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		json.NewEncoder(w).Encode(ollamaChatResponse{
			Message: ollamaMessage{Role: "assistant", Content: "filed within 90 days"},
			Model:   "llama3",
		})
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	resp, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{
			{Role: RoleSystem, Content: "answer from context"},
			{Role: RoleUser, Content: "when are claims due?"},
		},
		MaxTokens:   256,
		Temperature: 0.2,
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if resp.Content != "filed within 90 days" {
		t.Errorf("content: got %q", resp.Content)
	}
	if resp.Model != "llama3" {
		t.Errorf("model: got %q", resp.Model)
	}

	// Empty request model falls back to the provider default.
	if gotReq.Model != "llama3" {
		t.Errorf("request model: got %q", gotReq.Model)
	}
	if gotReq.Stream {
		t.Error("streaming must be disabled")
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" || gotReq.Messages[1].Role != "user" {
		t.Errorf("messages: got %+v", gotReq.Messages)
	}
	if gotReq.Options.Temperature != 0.2 || gotReq.Options.NumPredict != 256 {
		t.Errorf("options: got %+v", gotReq.Options)
	}
}

func TestOllamaCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "llama3")
	if _, err := p.Complete(context.Background(), CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
	}); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}
