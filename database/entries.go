package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
	loadSql "github.com/Prasanthk4/doc-intelligence-platform/sql"
)

// EntriesDBHandlerFunctions defines the interface for entries database operations.
type EntriesDBHandlerFunctions interface {
	Upsert(ctx context.Context, chunks []*model.Chunk) error
	Search(ctx context.Context, embedding []float32, topK int) ([]*model.Chunk, error)
	ByFilename(ctx context.Context, filename string) ([]*model.Chunk, error)
	Filenames(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
}

// EntriesDBHandler handles entry-related database operations.
// It backs the retrieval index with a pgvector table.
type EntriesDBHandler struct {
	db           *helper.Database
	embeddingDim int
}

// NewEntriesDBHandler creates a new entries database handler.
// It initializes the database connection and loads entry-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewEntriesDBHandler(db *helper.Database, embeddingDim int, force bool) (*EntriesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	entriesDbHandler := &EntriesDBHandler{
		db:           db,
		embeddingDim: embeddingDim,
	}

	err := loadSql.LoadEntriesSql(entriesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load entries sql", err)
	}

	err = entriesDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EntriesDBHandler")

	return entriesDbHandler, nil
}

// CreateTable creates the 'entries' table in the database.
// If the table already exists, it does not create it again.
func (h *EntriesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_entries($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing entries table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table entries")

	return nil
}

// Upsert inserts all given chunks as new entries.
// All chunks are validated before the first insert so an invalid
// batch does not leave partial writes behind.
func (h *EntriesDBHandler) Upsert(ctx context.Context, chunks []*model.Chunk) error {
	for _, chunk := range chunks {
		if len(chunk.Content) == 0 {
			return helper.NewError("validate entry", fmt.Errorf("%w: empty chunk content", model.ErrInvalidInput))
		}
		if len(chunk.Embedding) != h.embeddingDim {
			return helper.NewError("validate entry", fmt.Errorf(
				"%w: embedding dimension %d, expected %d", model.ErrInvalidInput, len(chunk.Embedding), h.embeddingDim))
		}
	}

	for _, chunk := range chunks {
		metadata := chunk.Metadata
		if metadata == nil {
			metadata = model.Metadata{}
		}

		row := h.db.Instance.QueryRowContext(
			ctx,
			`SELECT * FROM insert_entry($1, $2, $3, $4, $5, $6)`,
			chunk.Filename,
			chunk.ChunkIndex,
			chunk.TotalChunks,
			chunk.Content,
			pq.Array(chunk.Embedding),
			metadata,
		)

		err := row.Scan(
			&chunk.ID,
			&chunk.Filename,
			&chunk.ChunkIndex,
			&chunk.TotalChunks,
			&chunk.Content,
			pq.Array(&chunk.Embedding),
			&chunk.Metadata,
			&chunk.CreatedAt,
		)
		if err != nil {
			return helper.NewError("scan", err)
		}
	}

	return nil
}

// Search performs vector similarity search over all entries.
// Results are ordered by ascending cosine distance, ties by insertion order.
func (h *EntriesDBHandler) Search(ctx context.Context, embedding []float32, topK int) ([]*model.Chunk, error) {
	if len(embedding) != h.embeddingDim {
		return nil, helper.NewError("validate query", fmt.Errorf(
			"%w: embedding dimension %d, expected %d", model.ErrInvalidInput, len(embedding), h.embeddingDim))
	}
	if topK <= 0 {
		return nil, helper.NewError("validate query", fmt.Errorf("%w: topK must be positive", model.ErrInvalidInput))
	}

	embeddingVector := pgvector.NewVector(embedding)

	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_entries_by_similarity($1, $2)`,
		embeddingVector,
		topK,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.Filename,
			&chunk.ChunkIndex,
			&chunk.TotalChunks,
			&chunk.Content,
			pq.Array(&chunk.Embedding),
			&chunk.Metadata,
			&chunk.CreatedAt,
			&chunk.Similarity,
			&chunk.Distance,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// ByFilename retrieves all entries of a document in insertion order.
func (h *EntriesDBHandler) ByFilename(ctx context.Context, filename string) ([]*model.Chunk, error) {
	rows, err := h.db.Instance.QueryContext(
		ctx,
		`SELECT * FROM select_entries_by_filename($1)`,
		filename,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var chunks []*model.Chunk
	for rows.Next() {
		chunk := &model.Chunk{}
		err := rows.Scan(
			&chunk.ID,
			&chunk.Filename,
			&chunk.ChunkIndex,
			&chunk.TotalChunks,
			&chunk.Content,
			pq.Array(&chunk.Embedding),
			&chunk.Metadata,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		chunks = append(chunks, chunk)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return chunks, nil
}

// Filenames lists each indexed document once in first-seen order.
func (h *EntriesDBHandler) Filenames(ctx context.Context) ([]string, error) {
	rows, err := h.db.Instance.QueryContext(ctx, `SELECT * FROM select_entry_filenames()`)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var filenames []string
	for rows.Next() {
		var filename string
		err := rows.Scan(&filename)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		filenames = append(filenames, filename)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return filenames, nil
}

// Count returns the total number of entries.
func (h *EntriesDBHandler) Count(ctx context.Context) (int, error) {
	var count int
	err := h.db.Instance.QueryRowContext(ctx, `SELECT count_entries()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}

	return count, nil
}

// Clear removes all entries and restarts id assignment.
func (h *EntriesDBHandler) Clear(ctx context.Context) error {
	_, err := h.db.Instance.ExecContext(ctx, `SELECT clear_entries()`)
	if err != nil {
		return helper.NewError("exec", err)
	}

	return nil
}
