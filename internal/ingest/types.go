// Package ingest turns source documents into embedded, metadata-tagged
// chunks and feeds them to the vector store.
package ingest

// Document describes one ingestion request: a logical collection label plus
// a local path or URL to read from. It is discarded once ingestion
// completes.
type Document struct {
	Source   string            `json:"source"`
	FilePath string            `json:"file_path"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Page is one physical or logical page of raw extracted text.
type Page struct {
	Number int
	Text   string
}

// Ingestion status values. A document whose loader produced no pages still
// completes with StatusSuccess and a zero chunk count; only collaborator
// failures (embed, insert) mark a document failed.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Result summarizes one completed ingestion.
type Result struct {
	Source     string `json:"source"`
	FilePath   string `json:"file_path"`
	ChunkCount int    `json:"chunks"`
	Status     string `json:"status"`
}
