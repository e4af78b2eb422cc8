package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	answerTemperature = 0.2
	answerMaxTokens   = 1024

	// Fallback texts. The generator never propagates a failure; callers
	// always receive a usable answer string.
	noContextAnswer  = "I don't have enough information to answer your question."
	generateFallback = "I encountered an error while generating a response. Please try again."
)

const answerSystemPrompt = `You are a helpful assistant answering questions about a collection of ingested documents.

Use the provided context to answer the question. If the answer is not in the context, say so clearly.`

// Generator produces a prose answer from a question and retrieved context
// chunks using an LLM provider.
type Generator struct {
	provider Provider
	model    string
}

// NewGenerator creates a Generator backed by the given provider and model.
func NewGenerator(provider Provider, model string) *Generator {
	return &Generator{provider: provider, model: model}
}

// Available reports whether a provider is wired in.
func (g *Generator) Available() bool {
	return g != nil && g.provider != nil
}

// Generate answers the question from the ordered context chunks. It never
// returns an error: provider failures yield an apologetic fallback string.
func (g *Generator) Generate(ctx context.Context, question string, contextChunks []string) string {
	if !g.Available() {
		return generateFallback
	}
	if len(contextChunks) == 0 {
		return noContextAnswer
	}

	var sb strings.Builder
	for i, chunk := range contextChunks {
		fmt.Fprintf(&sb, "[Context %d]:\n%s\n\n", i+1, chunk)
	}

	userPrompt := fmt.Sprintf("CONTEXT:\n%s\nQUESTION: %s\n\nANSWER:", sb.String(), question)

	resp, err := g.provider.Complete(ctx, CompletionRequest{
		Model: g.model,
		Messages: []Message{
			{Role: RoleSystem, Content: answerSystemPrompt},
			{Role: RoleUser, Content: userPrompt},
		},
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		log.Printf("llm: answer generation failed: %v", err)
		return generateFallback
	}
	if strings.TrimSpace(resp.Content) == "" {
		return generateFallback
	}
	return resp.Content
}
