package pipeline

import (
	"fmt"

	"github.com/knights-analytics/hugot"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// EmbeddingModelName is the sentence transformer used by the local
// embedder. It produces 384-dimensional embeddings.
const EmbeddingModelName = "sentence-transformers/all-MiniLM-L6-v2"

// LocalEmbedder generates embeddings in-process with a sentence
// transformer model through hugot. Safe to reuse across documents; the
// dimensionality is probed once at construction.
type LocalEmbedder struct {
	run       func(texts []string) ([][]float32, error)
	destroy   func() error
	dimension int
}

// NewLocalEmbedder downloads the embedding model if needed and prepares
// an inference pipeline for it.
func NewLocalEmbedder() (*LocalEmbedder, error) {
	// Prepare model (download if needed)
	modelPath, err := helper.PrepareModel(EmbeddingModelName, "onnx/model.onnx")
	if err != nil {
		return nil, err
	}

	// Initialize hugot session with Go backend
	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "embedder-pipeline",
	}
	sentencePipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create sentence pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create sentence pipeline: %w", err)
	}

	e := &LocalEmbedder{
		run: func(texts []string) ([][]float32, error) {
			result, err := sentencePipeline.RunPipeline(texts)
			if err != nil {
				return nil, fmt.Errorf("failed to generate embeddings: %w", err)
			}
			return result.Embeddings, nil
		},
		destroy: session.Destroy,
	}

	// Probe the model once so Dimension is known up front.
	if err := e.probeDimension(); err != nil {
		_ = session.Destroy()
		return nil, err
	}

	return e, nil
}

// probeDimension runs a single inference to discover the embedding size.
func (e *LocalEmbedder) probeDimension() error {
	probe, err := e.run([]string{"dimension probe"})
	if err != nil {
		return fmt.Errorf("failed to probe embedding dimension: %w", err)
	}
	if len(probe) == 0 {
		return fmt.Errorf("failed to probe embedding dimension: no embedding returned")
	}
	e.dimension = len(probe[0])
	return nil
}

// Embed generates the embedding vector for a single text.
func (e *LocalEmbedder) Embed(text string) ([]float32, error) {
	embeddings, err := e.run([]string{text})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embedding generated")
	}
	return embeddings[0], nil
}

// EmbedBatch generates one embedding per input text, in input order.
func (e *LocalEmbedder) EmbedBatch(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	embeddings, err := e.run(texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err)
	}
	if len(embeddings) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: got %d embeddings for %d texts", len(embeddings), len(texts))
	}
	return embeddings, nil
}

// Dimension returns the embedding dimensionality of the loaded model.
func (e *LocalEmbedder) Dimension() int {
	return e.dimension
}

// Close releases the inference session.
func (e *LocalEmbedder) Close() error {
	return e.destroy()
}
