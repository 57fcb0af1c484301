package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

const testEmbeddingDim = 3

func testEntry(filename string, index int, content string, embedding []float32) *model.Chunk {
	return &model.Chunk{
		Filename:    filename,
		ChunkIndex:  index,
		TotalChunks: 1,
		Content:     content,
		Embedding:   embedding,
		Metadata:    model.Metadata{"type": "paragraph"},
	}
}

func initEntriesHandler(t *testing.T) *EntriesDBHandler {
	t.Helper()
	database := initDB(t)

	entriesDbHandler, err := NewEntriesDBHandler(database, testEmbeddingDim, true)
	require.NoError(t, err, "Expected NewEntriesDBHandler to not return an error")

	// The container is shared, so start each test from an empty table.
	err = entriesDbHandler.Clear(context.Background())
	require.NoError(t, err, "Expected Clear to not return an error")

	return entriesDbHandler
}

func TestEntriesNewEntriesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewEntriesDBHandler", func(t *testing.T) {
		entriesDbHandler, err := NewEntriesDBHandler(database, testEmbeddingDim, true)
		assert.NoError(t, err, "Expected NewEntriesDBHandler to not return an error")
		require.NotNil(t, entriesDbHandler, "Expected NewEntriesDBHandler to return a non-nil instance")
		require.NotNil(t, entriesDbHandler.db, "Expected NewEntriesDBHandler to have a non-nil database instance")
		require.NotNil(t, entriesDbHandler.db.Instance, "Expected NewEntriesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewEntriesDBHandler with nil database", func(t *testing.T) {
		_, err := NewEntriesDBHandler(nil, testEmbeddingDim, false)
		assert.Error(t, err, "Expected error when creating EntriesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestEntriesUpsert(t *testing.T) {
	entriesDbHandler := initEntriesHandler(t)
	ctx := context.Background()

	t.Run("Insert entries and assign ids", func(t *testing.T) {
		chunks := []*model.Chunk{
			testEntry("a.txt", 0, "first chunk", []float32{1, 0, 0}),
			testEntry("a.txt", 1, "second chunk", []float32{0, 1, 0}),
		}

		err := entriesDbHandler.Upsert(ctx, chunks)
		assert.NoError(t, err, "Expected Upsert to not return an error")
		assert.NotEmpty(t, chunks[0].ID, "Expected inserted entry to have an ID")
		assert.Greater(t, chunks[1].ID, chunks[0].ID, "Expected ids to be assigned in order")
		assert.WithinDuration(t, chunks[0].CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")

		count, err := entriesDbHandler.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("Invalid embedding dimension", func(t *testing.T) {
		err := entriesDbHandler.Upsert(ctx, []*model.Chunk{
			testEntry("a.txt", 2, "bad dimension", []float32{1, 0}),
		})
		assert.Error(t, err, "Expected error for wrong embedding dimension")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Invalid empty content", func(t *testing.T) {
		err := entriesDbHandler.Upsert(ctx, []*model.Chunk{
			testEntry("a.txt", 2, "", []float32{1, 0, 0}),
		})
		assert.Error(t, err, "Expected error for empty content")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Invalid batch leaves no partial writes", func(t *testing.T) {
		before, err := entriesDbHandler.Count(ctx)
		require.NoError(t, err)

		err = entriesDbHandler.Upsert(ctx, []*model.Chunk{
			testEntry("b.txt", 0, "valid", []float32{1, 0, 0}),
			testEntry("b.txt", 1, "invalid", []float32{1}),
		})
		assert.Error(t, err, "Expected error for invalid batch")

		after, err := entriesDbHandler.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after, "Expected no entries from invalid batch")
	})

	t.Run("Re-ingesting duplicates entries", func(t *testing.T) {
		err := entriesDbHandler.Upsert(ctx, []*model.Chunk{
			testEntry("a.txt", 0, "first chunk", []float32{1, 0, 0}),
		})
		assert.NoError(t, err, "Expected Upsert to not return an error")

		chunks, err := entriesDbHandler.ByFilename(ctx, "a.txt")
		require.NoError(t, err)
		assert.Len(t, chunks, 3, "Expected duplicate entries, not deduplication")
	})
}

func TestEntriesSearch(t *testing.T) {
	entriesDbHandler := initEntriesHandler(t)
	ctx := context.Background()

	err := entriesDbHandler.Upsert(ctx, []*model.Chunk{
		testEntry("a.txt", 0, "orthogonal", []float32{0, 1, 0}),
		testEntry("a.txt", 1, "diagonal", []float32{1, 1, 0}),
		testEntry("a.txt", 2, "aligned", []float32{1, 0, 0}),
	})
	require.NoError(t, err, "Expected Upsert to not return an error")

	t.Run("Orders by ascending cosine distance", func(t *testing.T) {
		results, err := entriesDbHandler.Search(ctx, []float32{1, 0, 0}, 3)
		assert.NoError(t, err, "Expected Search to not return an error")
		require.Len(t, results, 3)
		assert.Equal(t, "aligned", results[0].Content)
		assert.Equal(t, "diagonal", results[1].Content)
		assert.Equal(t, "orthogonal", results[2].Content)
		assert.LessOrEqual(t, results[0].Distance, results[1].Distance)
		assert.LessOrEqual(t, results[1].Distance, results[2].Distance)
	})

	t.Run("Returns similarity with results", func(t *testing.T) {
		results, err := entriesDbHandler.Search(ctx, []float32{1, 0, 0}, 1)
		assert.NoError(t, err, "Expected Search to not return an error")
		require.Len(t, results, 1)
		assert.InDelta(t, 1.0, results[0].Similarity, 0.001, "Expected identical vector to have similarity 1")
	})

	t.Run("Returns all entries when topK exceeds count", func(t *testing.T) {
		results, err := entriesDbHandler.Search(ctx, []float32{1, 0, 0}, 10)
		assert.NoError(t, err, "Expected Search to not return an error")
		assert.Len(t, results, 3)
	})

	t.Run("Invalid query dimension", func(t *testing.T) {
		_, err := entriesDbHandler.Search(ctx, []float32{1, 0}, 3)
		assert.Error(t, err, "Expected error for wrong query dimension")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("Invalid topK", func(t *testing.T) {
		_, err := entriesDbHandler.Search(ctx, []float32{1, 0, 0}, 0)
		assert.Error(t, err, "Expected error for non-positive topK")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestEntriesCorpus(t *testing.T) {
	entriesDbHandler := initEntriesHandler(t)
	ctx := context.Background()

	err := entriesDbHandler.Upsert(ctx, []*model.Chunk{
		testEntry("a.txt", 0, "a zero", []float32{1, 0, 0}),
		testEntry("b.txt", 0, "b zero", []float32{0, 1, 0}),
		testEntry("a.txt", 1, "a one", []float32{0, 0, 1}),
	})
	require.NoError(t, err, "Expected Upsert to not return an error")

	t.Run("Select entries by filename in insertion order", func(t *testing.T) {
		chunks, err := entriesDbHandler.ByFilename(ctx, "a.txt")
		assert.NoError(t, err, "Expected ByFilename to not return an error")
		require.Len(t, chunks, 2)
		assert.Equal(t, "a zero", chunks[0].Content)
		assert.Equal(t, "a one", chunks[1].Content)
	})

	t.Run("Select entries by unknown filename", func(t *testing.T) {
		chunks, err := entriesDbHandler.ByFilename(ctx, "missing.txt")
		assert.NoError(t, err, "Expected ByFilename to not return an error")
		assert.Empty(t, chunks)
	})

	t.Run("Select filenames in first-seen order", func(t *testing.T) {
		filenames, err := entriesDbHandler.Filenames(ctx)
		assert.NoError(t, err, "Expected Filenames to not return an error")
		assert.Equal(t, []string{"a.txt", "b.txt"}, filenames)
	})

	t.Run("Count entries", func(t *testing.T) {
		count, err := entriesDbHandler.Count(ctx)
		assert.NoError(t, err, "Expected Count to not return an error")
		assert.Equal(t, 3, count)
	})

	t.Run("Clear entries", func(t *testing.T) {
		err := entriesDbHandler.Clear(ctx)
		assert.NoError(t, err, "Expected Clear to not return an error")

		count, err := entriesDbHandler.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		// Id assignment restarts after a clear.
		chunk := testEntry("c.txt", 0, "fresh", []float32{1, 0, 0})
		err = entriesDbHandler.Upsert(ctx, []*model.Chunk{chunk})
		require.NoError(t, err)
		assert.Equal(t, int64(1), chunk.ID)
	})
}
