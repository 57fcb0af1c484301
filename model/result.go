package model

// ConfidenceLevel is a coarse label summarizing answer trustworthiness.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Source describes one retrieved chunk backing an answer.
// Preview is truncated to at most 200 characters plus an ellipsis.
type Source struct {
	Rank       int    `json:"rank"` // 1-based rank in the retrieved set
	Filename   string `json:"filename"`
	ChunkIndex int    `json:"chunk_index"`
	Preview    string `json:"preview"`
}

// Confidence is the heuristic trust rating for an answer. It is recomputed
// on every query, including cache hits, and never stored.
type Confidence struct {
	Score      float64         `json:"score"` // in [0, 1]
	Level      ConfidenceLevel `json:"level"`
	Reason     string          `json:"reason"`
	NumSources int             `json:"num_sources"`
}

// QueryResult is the full return shape of a query.
type QueryResult struct {
	Answer     string     `json:"answer"`
	Sources    []Source   `json:"sources"`
	Confidence Confidence `json:"confidence"`
}

// CachedAnswer is the cacheable part of a query result. Confidence is
// deliberately excluded so it is always scored fresh.
type CachedAnswer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// IngestResult summarizes a batch ingestion.
type IngestResult struct {
	NumDocuments int         `json:"num_documents"`
	NumChunks    int         `json:"num_chunks"`
	Filenames    []string    `json:"filenames"`
	Documents    []*Document `json:"documents"`
}
