// Package retrieval implements the query-time half of the engine: candidate
// retrieval against the vector store and hybrid reranking of the results.
package retrieval

import (
	"context"
	"log"
	"regexp"
	"strconv"

	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// maxOversample caps how many candidates are requested from the index
// regardless of the requested result count.
const maxOversample = 50

var (
	chapterMention = regexp.MustCompile(`(?i)chapter\s*(\d+)`)
	pageMention    = regexp.MustCompile(`(?i)page\s*(\d+)`)
)

// ParseQueryFilter derives an optional structured filter from the question
// text. A chapter mention wins over a page mention when both are present;
// this keeps filter selection deterministic.
func ParseQueryFilter(query string) *vectordb.QueryFilter {
	if m := chapterMention.FindStringSubmatch(query); m != nil {
		return &vectordb.QueryFilter{Chapter: &m[1]}
	}
	if m := pageMention.FindStringSubmatch(query); m != nil {
		if page, err := strconv.Atoi(m[1]); err == nil {
			return &vectordb.QueryFilter{Page: &page}
		}
	}
	return nil
}

// Retriever issues over-sampled nearest-neighbour queries against the
// vector store.
type Retriever struct {
	store vectordb.VectorStore
}

// NewRetriever creates a Retriever over the given store. A nil store yields
// a retriever that always returns empty results.
func NewRetriever(store vectordb.VectorStore) *Retriever {
	return &Retriever{store: store}
}

// Available reports whether a vector store is wired in.
func (r *Retriever) Available() bool {
	return r != nil && r.store != nil
}

// Candidates fetches up to min(2*k, 50) nearest neighbours for the query
// embedding, constrained by any chapter/page filter parsed from the query
// text. An unavailable store, a failing query, or an empty index all yield
// an empty slice; none of these is an error condition. Result order is
// whatever the index returned and is only meaningful after reranking.
func (r *Retriever) Candidates(ctx context.Context, embedding []float32, queryText string, k int) []vectordb.Candidate {
	if !r.Available() {
		return nil
	}
	if k <= 0 {
		return nil
	}

	fetch := 2 * k
	if fetch > maxOversample {
		fetch = maxOversample
	}

	candidates, err := r.store.Query(ctx, embedding, fetch, ParseQueryFilter(queryText))
	if err != nil {
		log.Printf("retrieval: vector store query failed: %v", err)
		return nil
	}
	return candidates
}
