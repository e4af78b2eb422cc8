package vectordb

// ChunkMetadata holds the structural tags attached to a chunk at ingestion
// time. Chapter and section are best-effort heuristics; empty means unknown,
// never a retrieval error.
type ChunkMetadata struct {
	SourceFile string `json:"source_file"`
	Page       int    `json:"page"`
	Chapter    string `json:"chapter,omitempty"`
	Section    string `json:"section,omitempty"`
}

// Document is one text chunk stored in the vector index, with its embedding
// computed upstream by the ingestion pipeline.
type Document struct {
	ID        string
	Text      string
	Embedding []float32
	Metadata  ChunkMetadata
}

// Candidate is one nearest-neighbour hit before reranking. Distance is a
// cosine distance in [0, 2]; candidate order carries no meaning until the
// hybrid ranker sorts it.
type Candidate struct {
	Text     string
	Distance float32
	Metadata ChunkMetadata
}

// QueryFilter narrows a query to chunks whose metadata field matches
// exactly. At most one field is set by the caller.
type QueryFilter struct {
	Chapter *string
	Page    *int
}
