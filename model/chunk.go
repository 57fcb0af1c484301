package model

import "time"

// Chunk represents an indexed segment of a document's text. It is the unit
// of embedding and retrieval. Identity within a corpus is (Filename, ChunkIndex),
// but the index itself assigns sequential IDs and does not deduplicate, so
// re-ingesting a file produces additional entries.
type Chunk struct {
	ID          int64     `json:"id"`
	Filename    string    `json:"filename"`
	ChunkIndex  int       `json:"chunk_index"`
	TotalChunks int       `json:"total_chunks"`
	Content     string    `json:"content"`
	Embedding   []float32 `json:"embedding,omitempty"`
	Metadata    Metadata  `json:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// Results
	Similarity float64 `json:"similarity,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
}
