package pipeline

import (
	"fmt"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// ChunkFunc is a function that splits raw document text into an ordered
// sequence of chunk texts.
type ChunkFunc func(text string) ([]string, error)

// Embedder maps text to fixed-dimensionality vectors. EmbedBatch is
// order-preserving and returns exactly one vector per input. The
// dimensionality is fixed for the lifetime of the embedder and must match
// between index-time and query-time vectors.
type Embedder interface {
	Embed(text string) ([]float32, error)
	EmbedBatch(texts []string) ([][]float32, error)
	Dimension() int
}

// Pipeline combines chunking and embedding for document ingestion.
type Pipeline struct {
	Chunker  ChunkFunc
	Embedder Embedder
}

// NewPipeline creates a new processing pipeline
func NewPipeline(chunker ChunkFunc, embedder Embedder) *Pipeline {
	return &Pipeline{
		Chunker:  chunker,
		Embedder: embedder,
	}
}

// Process splits text into chunks, embeds all of them in one batched call
// and returns them carrying filename, position and total-count metadata.
// Empty or whitespace-only text yields no chunks.
func (p *Pipeline) Process(text string, filename string) ([]*model.Chunk, error) {
	texts, err := p.Chunker(text)
	if err != nil {
		return nil, helper.NewError("chunk text", err)
	}
	if len(texts) == 0 {
		return nil, nil
	}

	embeddings, err := p.Embedder.EmbedBatch(texts)
	if err != nil {
		return nil, helper.NewError("embed chunks", err)
	}
	if len(embeddings) != len(texts) {
		return nil, helper.NewError("embed chunks",
			fmt.Errorf("embedding count mismatch: got %d embeddings for %d chunks", len(embeddings), len(texts)))
	}

	chunks := make([]*model.Chunk, 0, len(texts))
	for i, content := range texts {
		chunks = append(chunks, &model.Chunk{
			Filename:    filename,
			ChunkIndex:  i,
			TotalChunks: len(texts),
			Content:     content,
			Embedding:   embeddings[i],
			// Empty by default, callers can annotate before indexing.
			Metadata: model.Metadata{},
		})
	}

	return chunks, nil
}
