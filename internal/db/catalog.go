package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DocumentRecord is one catalog entry describing a completed ingestion.
type DocumentRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	FilePath   string    `json:"file_path"`
	ChunkCount int       `json:"chunk_count"`
	Status     string    `json:"status"`
	IngestedAt time.Time `json:"ingested_at"`
}

// RecordIngestion inserts a catalog row for a completed ingestion and
// returns it with its generated id and timestamp.
func (d *DB) RecordIngestion(ctx context.Context, rec DocumentRecord) (DocumentRecord, error) {
	rec.ID = uuid.NewString()
	rec.IngestedAt = time.Now().UTC()

	_, err := d.ExecContext(ctx,
		`INSERT INTO documents (id, source, file_path, chunk_count, status, ingested_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.FilePath, rec.ChunkCount, rec.Status,
		rec.IngestedAt.Format(time.RFC3339),
	)
	if err != nil {
		return DocumentRecord{}, fmt.Errorf("recording ingestion: %w", err)
	}
	return rec, nil
}

// ListIngestions returns catalog entries, newest first. limit <= 0 means
// no limit.
func (d *DB) ListIngestions(ctx context.Context, limit int) ([]DocumentRecord, error) {
	query := `SELECT id, source, file_path, chunk_count, status, ingested_at
	          FROM documents ORDER BY ingested_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing ingestions: %w", err)
	}
	defer rows.Close()

	var records []DocumentRecord
	for rows.Next() {
		var rec DocumentRecord
		var ts string
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.FilePath, &rec.ChunkCount, &rec.Status, &ts); err != nil {
			return nil, fmt.Errorf("scanning ingestion row: %w", err)
		}
		rec.IngestedAt, _ = time.Parse(time.RFC3339, ts)
		records = append(records, rec)
	}
	return records, rows.Err()
}

// CountChunks returns the total chunk count across successful ingestions.
func (d *DB) CountChunks(ctx context.Context) (int, error) {
	var n int
	err := d.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(chunk_count), 0) FROM documents WHERE status = 'success'`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return n, nil
}
