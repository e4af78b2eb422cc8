package vectordb

import "context"

// VectorStore defines the interface for the ANN index holding document
// chunks. Insert is append-only and safe for concurrent use; Query never
// mutates the store.
type VectorStore interface {
	// Insert adds a batch of chunks with pre-computed embeddings.
	Insert(ctx context.Context, docs []Document) error

	// Query returns up to k nearest neighbours for the given embedding,
	// optionally constrained by an exact-match metadata filter. An empty
	// index yields an empty result, not an error.
	Query(ctx context.Context, embedding []float32, k int, filter *QueryFilter) ([]Candidate, error)

	// Persist saves the store's data to the given directory.
	Persist(ctx context.Context, dir string) error

	// Load restores the store's data from the given directory.
	Load(ctx context.Context, dir string) error

	// Count returns the total number of chunks in the store.
	Count() int
}
