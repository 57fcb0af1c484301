package retrieval

import (
	"context"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// previewLength bounds the source preview text.
const previewLength = 200

// Engine runs similarity retrieval against an Index and shapes the
// results for answer generation.
type Engine struct {
	index Index
}

// NewEngine creates a retrieval engine over an index.
func NewEngine(index Index) *Engine {
	return &Engine{index: index}
}

// Index exposes the underlying index for corpus-level operations.
func (e *Engine) Index() Index {
	return e.index
}

// Retrieve returns the topK nearest chunks for a query embedding. It fails
// fast with model.ErrEmptyCorpus when nothing has been ingested, so
// callers never issue a meaningless generation request.
func (e *Engine) Retrieve(ctx context.Context, embedding []float32, topK int) ([]*model.Chunk, error) {
	count, err := e.index.Count(ctx)
	if err != nil {
		return nil, helper.NewError("count entries", err)
	}
	if count == 0 {
		return nil, helper.NewError("retrieve chunks", model.ErrEmptyCorpus)
	}

	chunks, err := e.index.Search(ctx, embedding, topK)
	if err != nil {
		return nil, helper.NewError("search index", err)
	}
	return chunks, nil
}

// Sources builds the 1-based source descriptors for a retrieved set,
// truncating each preview to previewLength characters plus an ellipsis.
func Sources(chunks []*model.Chunk) []model.Source {
	sources := make([]model.Source, 0, len(chunks))
	for i, chunk := range chunks {
		preview := chunk.Content
		if runes := []rune(preview); len(runes) > previewLength {
			preview = string(runes[:previewLength]) + "..."
		}
		sources = append(sources, model.Source{
			Rank:       i + 1,
			Filename:   chunk.Filename,
			ChunkIndex: chunk.ChunkIndex,
			Preview:    preview,
		})
	}
	return sources
}

// Contexts returns the chunk texts in rank order for prompt assembly.
func Contexts(chunks []*model.Chunk) []string {
	contexts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		contexts = append(contexts, chunk.Content)
	}
	return contexts
}
