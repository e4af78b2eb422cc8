package ingest

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ragdoc/ragdoc/internal/chunker"
	"github.com/ragdoc/ragdoc/internal/db"
	"github.com/ragdoc/ragdoc/internal/embeddings"
	"github.com/ragdoc/ragdoc/internal/textproc"
	"github.com/ragdoc/ragdoc/internal/vectordb"
)

// DocumentLoader is the external collaborator that turns a path or URL into
// ordered pages of raw text.
type DocumentLoader interface {
	Load(ctx context.Context, pathOrURL string) []Page
}

// Pipeline sequences one document through load, normalize, segment, tag,
// embed, and insert. It owns the Document to Page to Chunk transformation
// for the lifetime of one Ingest call; chunks are handed to the index by
// value and not retained.
type Pipeline struct {
	loader   DocumentLoader
	splitter *chunker.Splitter
	embedder embeddings.Embedder
	store    vectordb.VectorStore
	catalog  *db.DB
}

// New wires an ingestion pipeline. catalog may be nil; recording is then
// skipped.
func New(loader DocumentLoader, splitter *chunker.Splitter, embedder embeddings.Embedder, store vectordb.VectorStore, catalog *db.DB) *Pipeline {
	return &Pipeline{
		loader:   loader,
		splitter: splitter,
		embedder: embedder,
		store:    store,
		catalog:  catalog,
	}
}

// Available reports whether every collaborator is wired in.
func (p *Pipeline) Available() bool {
	return p != nil && p.loader != nil && p.splitter != nil && p.embedder != nil && p.store != nil
}

// Ingest processes one document. A loader that produces no pages, or pages
// that normalize to nothing, completes with a zero chunk count and
// StatusSuccess; only embed/insert failures return an error, alongside a
// StatusFailed result. The caller's context deadline applies to every
// external call.
func (p *Pipeline) Ingest(ctx context.Context, doc Document) (Result, error) {
	if !p.Available() {
		// An unwired pipeline has no catalog state worth recording.
		return Result{Source: doc.Source, FilePath: doc.FilePath, Status: StatusFailed},
			fmt.Errorf("ingest: pipeline missing a collaborator")
	}

	sourceFile := "unknown"
	if doc.FilePath != "" {
		sourceFile = filepath.Base(doc.FilePath)
	}

	pages := p.loader.Load(ctx, doc.FilePath)

	var docs []vectordb.Document
	for _, page := range pages {
		text := textproc.Normalize(page.Text)
		if text == "" {
			// Blank page: skip without failing the document.
			continue
		}
		for _, chunkText := range p.splitter.Split(text) {
			docs = append(docs, vectordb.Document{
				ID:   uuid.NewString(),
				Text: chunkText,
				Metadata: vectordb.ChunkMetadata{
					SourceFile: sourceFile,
					Page:       page.Number,
					Chapter:    chunker.ExtractChapter(chunkText),
					Section:    chunker.ExtractSection(chunkText),
				},
			})
		}
	}

	if len(docs) == 0 {
		return p.finish(ctx, doc, 0, StatusSuccess), nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text
	}

	vectors, err := p.embedder.Embed(ctx, texts)
	if err != nil {
		return p.finish(ctx, doc, 0, StatusFailed), fmt.Errorf("embedding %s: %w", doc.FilePath, err)
	}
	if len(vectors) != len(docs) {
		return p.finish(ctx, doc, 0, StatusFailed),
			fmt.Errorf("embedding %s: got %d vectors for %d chunks", doc.FilePath, len(vectors), len(docs))
	}
	for i := range docs {
		docs[i].Embedding = vectors[i]
	}

	if err := p.store.Insert(ctx, docs); err != nil {
		return p.finish(ctx, doc, 0, StatusFailed), fmt.Errorf("inserting %s: %w", doc.FilePath, err)
	}

	return p.finish(ctx, doc, len(docs), StatusSuccess), nil
}

// finish records the outcome in the catalog (best effort) and builds the
// Result.
func (p *Pipeline) finish(ctx context.Context, doc Document, chunkCount int, status string) Result {
	if p.catalog != nil {
		_, err := p.catalog.RecordIngestion(ctx, db.DocumentRecord{
			Source:     doc.Source,
			FilePath:   doc.FilePath,
			ChunkCount: chunkCount,
			Status:     status,
		})
		if err != nil {
			log.Printf("ingest: recording %s in catalog: %v", doc.FilePath, err)
		}
	}
	return Result{
		Source:     doc.Source,
		FilePath:   doc.FilePath,
		ChunkCount: chunkCount,
		Status:     status,
	}
}
