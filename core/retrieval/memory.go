package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

const indexFileName = "index.json"

// MemoryIndex is a brute-force cosine similarity index held in memory.
// With a data directory set it persists every mutation to a JSON file and
// reloads it on startup, surviving process restarts without a database.
type MemoryIndex struct {
	mu        sync.RWMutex
	dimension int
	path      string // empty disables persistence
	entries   []*model.Chunk
	nextID    int64
}

// NewMemoryIndex creates a volatile in-memory index for embeddings of the
// given dimensionality.
func NewMemoryIndex(dimension int) *MemoryIndex {
	return &MemoryIndex{dimension: dimension, nextID: 1}
}

// NewPersistentMemoryIndex creates a memory index backed by a JSON file
// under dir, loading any previously persisted entries.
func NewPersistentMemoryIndex(dimension int, dir string) (*MemoryIndex, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, helper.NewError("create index directory", err)
	}

	idx := &MemoryIndex{
		dimension: dimension,
		path:      filepath.Join(dir, indexFileName),
		nextID:    1,
	}
	if err := idx.load(); err != nil {
		return nil, err
	}

	return idx, nil
}

func (m *MemoryIndex) Upsert(ctx context.Context, chunks []*model.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, chunk := range chunks {
		if chunk == nil || chunk.Content == "" {
			return helper.NewError("validate entries",
				fmt.Errorf("%w: entry %d has no content", model.ErrInvalidInput, i))
		}
		if len(chunk.Embedding) != m.dimension {
			return helper.NewError("validate entries",
				fmt.Errorf("%w: entry %d has embedding dimension %d, index expects %d",
					model.ErrInvalidInput, i, len(chunk.Embedding), m.dimension))
		}
	}

	for _, chunk := range chunks {
		stored := *chunk
		stored.ID = m.nextID
		stored.CreatedAt = time.Now()
		m.nextID++
		m.entries = append(m.entries, &stored)
		chunk.ID = stored.ID
	}

	return m.flush()
}

func (m *MemoryIndex) Search(ctx context.Context, embedding []float32, topK int) ([]*model.Chunk, error) {
	if len(embedding) != m.dimension {
		return nil, helper.NewError("validate query embedding",
			fmt.Errorf("%w: query embedding dimension %d, index expects %d",
				model.ErrInvalidInput, len(embedding), m.dimension))
	}
	if topK <= 0 {
		return nil, helper.NewError("validate top k",
			fmt.Errorf("%w: top k must be positive", model.ErrInvalidInput))
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]*model.Chunk, 0, len(m.entries))
	for _, entry := range m.entries {
		scored := *entry
		scored.Similarity = float64(cosineSimilarity(entry.Embedding, embedding))
		scored.Distance = 1 - scored.Similarity
		results = append(results, &scored)
	}

	// Stable sort keeps insertion order for equal distances.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Distance < results[j].Distance
	})

	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

func (m *MemoryIndex) ByFilename(ctx context.Context, filename string) ([]*model.Chunk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var results []*model.Chunk
	for _, entry := range m.entries {
		if entry.Filename == filename {
			found := *entry
			results = append(results, &found)
		}
	}
	return results, nil
}

func (m *MemoryIndex) Filenames(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, entry := range m.entries {
		if !seen[entry.Filename] {
			seen[entry.Filename] = true
			names = append(names, entry.Filename)
		}
	}
	return names, nil
}

func (m *MemoryIndex) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

func (m *MemoryIndex) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = nil
	m.nextID = 1
	return m.flush()
}

// flush writes the current entries to the backing file. Callers hold the
// write lock. Writes go through a temp file and rename so a crash never
// leaves a truncated index behind.
func (m *MemoryIndex) flush() error {
	if m.path == "" {
		return nil
	}

	data, err := json.Marshal(m.entries)
	if err != nil {
		return helper.NewError("encode index", err)
	}

	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return helper.NewError("write index file", err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return helper.NewError("replace index file", err)
	}
	return nil
}

func (m *MemoryIndex) load() error {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return helper.NewError("read index file", err)
	}

	var entries []*model.Chunk
	if err := json.Unmarshal(data, &entries); err != nil {
		return helper.NewError("decode index file", err)
	}

	m.entries = entries
	for _, entry := range entries {
		if entry.ID >= m.nextID {
			m.nextID = entry.ID + 1
		}
	}
	return nil
}

// cosineSimilarity calculates the cosine similarity between two embedding vectors
func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float32
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
