package retrieval

import (
	"context"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// Index stores (chunk text, metadata, embedding) entries and answers
// nearest-neighbor queries. Entries get sequential ids at insertion time;
// ids are not stable across re-ingestion. The index does not deduplicate
// by filename: re-ingesting a file adds a second copy of its chunks.
//
// Implementations: EntriesDBHandler (Postgres/pgvector) and MemoryIndex
// (in-process, optionally file-backed).
type Index interface {
	// Upsert appends entries. Every chunk must carry an embedding of the
	// index's dimensionality; anything else fails with model.ErrInvalidInput
	// before any entry is written.
	Upsert(ctx context.Context, chunks []*model.Chunk) error

	// Search returns up to topK entries ranked by ascending cosine
	// distance to the query embedding, ties broken by insertion order.
	// An empty index returns no entries.
	Search(ctx context.Context, embedding []float32, topK int) ([]*model.Chunk, error)

	// ByFilename returns all entries for a filename in insertion order.
	ByFilename(ctx context.Context, filename string) ([]*model.Chunk, error)

	// Filenames returns the distinct indexed filenames in first-seen order.
	Filenames(ctx context.Context) ([]string, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (int, error)

	// Clear removes all entries and resets id assignment.
	Clear(ctx context.Context) error
}
