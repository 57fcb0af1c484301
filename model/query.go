package model

import (
	"time"

	"github.com/google/uuid"
)

// QueryRecord is one logged query, persisted for analytics.
type QueryRecord struct {
	ID         int64     `json:"id"`
	RID        uuid.UUID `json:"rid"`
	Question   string    `json:"question"`
	DurationMS int64     `json:"duration_ms"`
	NumSources int       `json:"num_sources"`
	CreatedAt  time.Time `json:"created_at"`
}
