package ingest

import (
	"context"
	"sync"
	"sync/atomic"
)

// ProgressFunc is called as documents finish, for progress reporting.
type ProgressFunc func(processed int, total int, currentFile string)

// Batcher ingests documents concurrently through a bounded worker pool, one
// worker per document. Workers share no mutable state except the vector
// store, whose insert path is safe for concurrent use.
type Batcher struct {
	concurrency int
	pipeline    *Pipeline
	onProgress  ProgressFunc
}

// NewBatcher creates a Batcher with the given concurrency limit.
func NewBatcher(concurrency int, pipeline *Pipeline, onProgress ProgressFunc) *Batcher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Batcher{
		concurrency: concurrency,
		pipeline:    pipeline,
		onProgress:  onProgress,
	}
}

// BatchResult holds collected results and errors from batch ingestion. A
// failed document does not affect others in flight.
type BatchResult struct {
	Results []Result
	Errors  []error
}

// TotalChunks sums the chunk counts across all results.
func (r *BatchResult) TotalChunks() int {
	total := 0
	for _, res := range r.Results {
		total += res.ChunkCount
	}
	return total
}

// Ingest processes the documents with bounded parallelism. Context
// cancellation stops new work; documents already in flight finish and
// report their own outcome.
func (b *Batcher) Ingest(ctx context.Context, docs []Document) *BatchResult {
	total := len(docs)
	if total == 0 {
		return &BatchResult{}
	}

	sem := make(chan struct{}, b.concurrency)
	var mu sync.Mutex
	var processed int64
	result := &BatchResult{}

	var wg sync.WaitGroup
	for _, doc := range docs {
		select {
		case <-ctx.Done():
			mu.Lock()
			result.Errors = append(result.Errors, ctx.Err())
			mu.Unlock()
			count := atomic.AddInt64(&processed, 1)
			if b.onProgress != nil {
				b.onProgress(int(count), total, doc.FilePath)
			}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(d Document) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := b.pipeline.Ingest(ctx, d)
			mu.Lock()
			result.Results = append(result.Results, res)
			if err != nil {
				result.Errors = append(result.Errors, err)
			}
			mu.Unlock()

			count := atomic.AddInt64(&processed, 1)
			if b.onProgress != nil {
				b.onProgress(int(count), total, d.FilePath)
			}
		}(doc)
	}

	wg.Wait()
	return result
}
