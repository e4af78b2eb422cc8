package vectordb

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	chromem "github.com/philippgille/chromem-go"
)

const (
	collectionName = "documents"
	exportFile     = "chromem.gob.gz"
)

// ChromemStore implements VectorStore using chromem-go. Embeddings are
// always supplied by the caller; the collection's embedding func exists only
// to satisfy chromem's API and fails if it is ever invoked.
type ChromemStore struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewChromemStore creates a new in-memory ChromemStore.
func NewChromemStore() (*ChromemStore, error) {
	db := chromem.NewDB()
	ef := func(_ context.Context, _ string) ([]float32, error) {
		return nil, fmt.Errorf("embeddings must be computed before insert")
	}

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &ChromemStore{db: db, collection: col, embedFunc: ef}, nil
}

func (s *ChromemStore) Insert(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	chromDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromDocs[i] = chromem.Document{
			ID:        doc.ID,
			Content:   doc.Text,
			Embedding: doc.Embedding,
			Metadata:  metadataToMap(doc.Metadata),
		}
	}

	return s.collection.AddDocuments(ctx, chromDocs, 1)
}

func (s *ChromemStore) Query(ctx context.Context, embedding []float32, k int, filter *QueryFilter) ([]Candidate, error) {
	if k <= 0 {
		k = 10
	}

	// chromem-go requires nResults <= collection size.
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}

	results, err := s.collection.QueryEmbedding(ctx, embedding, k, buildWhereClause(filter), nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = Candidate{
			Text: r.Content,
			// chromem reports cosine similarity; the ranker works in
			// distance space.
			Distance: 1 - r.Similarity,
			Metadata: mapToMetadata(r.Metadata),
		}
	}

	return candidates, nil
}

func (s *ChromemStore) Persist(ctx context.Context, dir string) error {
	return s.db.ExportToFile(filepath.Join(dir, exportFile), true, "")
}

func (s *ChromemStore) Load(ctx context.Context, dir string) error {
	if err := s.db.ImportFromFile(filepath.Join(dir, exportFile), ""); err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	s.collection = col
	return nil
}

func (s *ChromemStore) Count() int {
	return s.collection.Count()
}

// metadataToMap flattens ChunkMetadata for chromem, which stores metadata as
// string pairs. Empty chapter/section values are stored as-is so exact-match
// filters behave predictably.
func metadataToMap(m ChunkMetadata) map[string]string {
	return map[string]string{
		"source_file": m.SourceFile,
		"page":        strconv.Itoa(m.Page),
		"chapter":     m.Chapter,
		"section":     m.Section,
	}
}

func mapToMetadata(m map[string]string) ChunkMetadata {
	page, _ := strconv.Atoi(m["page"])
	return ChunkMetadata{
		SourceFile: m["source_file"],
		Page:       page,
		Chapter:    m["chapter"],
		Section:    m["section"],
	}
}

// buildWhereClause converts a QueryFilter to a chromem where clause.
// Chapter takes precedence when both fields are somehow set.
func buildWhereClause(filter *QueryFilter) map[string]string {
	if filter == nil {
		return nil
	}
	if filter.Chapter != nil {
		return map[string]string{"chapter": *filter.Chapter}
	}
	if filter.Page != nil {
		return map[string]string{"page": strconv.Itoa(*filter.Page)}
	}
	return nil
}
