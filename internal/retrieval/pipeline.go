package retrieval

import (
	"context"
	"fmt"
	"log"

	"github.com/ragdoc/ragdoc/internal/embeddings"
	"github.com/ragdoc/ragdoc/internal/llm"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// DefaultTopK is the number of results returned when the caller does not
// ask for a specific count.
const DefaultTopK = 5

const (
	noResultsAnswer   = "I couldn't find relevant information to answer your question."
	pipelineErrAnswer = "An error occurred while processing your question."
)

// Answer is the complete result of one retrieval call. It is always
// well-formed, even in total failure; Err distinguishes a degraded answer
// from a genuine "nothing relevant found".
type Answer struct {
	Question  string
	Text      string
	Context   []string
	Scores    []float64
	Metadata  []vectordb.ChunkMetadata
	NumChunks int
	Err       bool
}

// Pipeline orchestrates one query: embed the question, retrieve candidates,
// rank them, and generate a prose answer. Collaborator failures never
// propagate past Query; they degrade to fallback answers.
type Pipeline struct {
	embedder  embeddings.Embedder
	retriever *Retriever
	generator *llm.Generator
	topK      int
}

// NewPipeline wires the retrieval orchestrator. Any collaborator may be nil;
// the pipeline then reports itself unavailable or degrades at query time.
func NewPipeline(embedder embeddings.Embedder, store vectordb.VectorStore, generator *llm.Generator, topK int) *Pipeline {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Pipeline{
		embedder:  embedder,
		retriever: NewRetriever(store),
		generator: generator,
		topK:      topK,
	}
}

// Available reports whether the pipeline can serve queries at all.
func (p *Pipeline) Available() bool {
	return p != nil && p.embedder != nil && p.retriever.Available()
}

// Search returns the ranked chunks for a question without generating a
// prose answer. Unlike Query it reports failures to the caller.
func (p *Pipeline) Search(ctx context.Context, question string, topK int) ([]RankedResult, error) {
	if topK <= 0 {
		topK = p.topK
	}
	if !p.Available() {
		return nil, fmt.Errorf("retrieval: pipeline unavailable")
	}

	embedding, err := embeddings.EmbedQuery(ctx, p.embedder, question)
	if err != nil {
		return nil, fmt.Errorf("retrieval: embedding query: %w", err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("retrieval: empty query embedding")
	}

	candidates := p.retriever.Candidates(ctx, embedding, question, topK)
	return Rank(candidates, question, topK), nil
}

// Query answers a question from the ingested documents. topK <= 0 falls
// back to the pipeline default. The caller's context deadline applies to
// every external call (embed, index query, generate).
func (p *Pipeline) Query(ctx context.Context, question string, topK int) Answer {
	if topK <= 0 {
		topK = p.topK
	}

	if !p.Available() {
		return Answer{
			Question: question,
			Text:     pipelineErrAnswer,
			Context:  []string{},
			Err:      true,
		}
	}

	embedding, err := embeddings.EmbedQuery(ctx, p.embedder, question)
	if err != nil || len(embedding) == 0 {
		log.Printf("retrieval: query embedding failed: %v", err)
		return Answer{
			Question: question,
			Text:     pipelineErrAnswer,
			Context:  []string{},
			Err:      true,
		}
	}

	candidates := p.retriever.Candidates(ctx, embedding, question, topK)
	ranked := Rank(candidates, question, topK)

	if len(ranked) == 0 {
		return Answer{
			Question: question,
			Text:     noResultsAnswer,
			Context:  []string{},
		}
	}

	texts := make([]string, len(ranked))
	scores := make([]float64, len(ranked))
	metas := make([]vectordb.ChunkMetadata, len(ranked))
	for i, r := range ranked {
		texts[i] = r.Text
		scores[i] = r.Score
		metas[i] = r.Metadata
	}

	return Answer{
		Question:  question,
		Text:      p.generator.Generate(ctx, question, texts),
		Context:   texts,
		Scores:    scores,
		Metadata:  metas,
		NumChunks: len(ranked),
	}
}
