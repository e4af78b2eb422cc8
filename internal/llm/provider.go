// Package llm generates prose answers from retrieved document chunks via a
// pluggable chat-completion provider.
package llm

import "context"

// Provider is a chat-completion backend for answer generation.
type Provider interface {
	// Complete sends one completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the provider for logs.
	Name() string
}
