package model

// Document represents a single processed source document. The raw text and
// the chunk texts are kept for downstream consumers (entity extraction,
// report export); only the chunks are persisted in the vector index.
type Document struct {
	Filename  string   `json:"filename"`
	Text      string   `json:"text"`
	Chunks    []string `json:"chunks"`
	NumChunks int      `json:"num_chunks"`
}
