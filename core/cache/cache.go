package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// Stats reports the current cache occupancy.
type Stats struct {
	Size     int `json:"size"`
	Capacity int `json:"capacity"`
}

// QueryCache memoizes (question -> answer, sources) pairs so repeated
// questions skip retrieval and generation. Keys are case-folded, so the
// same question in different casing hits the same entry. Capacity is
// bounded; inserting beyond it evicts the least recently accessed entry.
//
// Confidence is never cached - it is recomputed on every query.
type QueryCache struct {
	entries  *lru.Cache[string, model.CachedAnswer]
	capacity int
}

// NewQueryCache creates a cache holding at most capacity entries.
func NewQueryCache(capacity int) (*QueryCache, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("cache capacity must be positive")
	}
	entries, err := lru.New[string, model.CachedAnswer](capacity)
	if err != nil {
		return nil, err
	}
	return &QueryCache{entries: entries, capacity: capacity}, nil
}

// key normalizes a question to its cache key.
func key(question string) string {
	sum := md5.Sum([]byte(strings.ToLower(question)))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached answer for a question. A miss does not touch
// recency; a hit marks the entry as most recently used.
func (c *QueryCache) Get(question string) (model.CachedAnswer, bool) {
	return c.entries.Get(key(question))
}

// Set inserts or overwrites the answer for a question, evicting the least
// recently accessed entry when at capacity.
func (c *QueryCache) Set(question string, result model.CachedAnswer) {
	c.entries.Add(key(question), result)
}

// Clear removes all entries.
func (c *QueryCache) Clear() {
	c.entries.Purge()
}

// Stats returns the current size and capacity.
func (c *QueryCache) Stats() Stats {
	return Stats{Size: c.entries.Len(), Capacity: c.capacity}
}
