package pipeline

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

func failingLocalEmbedder(dimension int) *LocalEmbedder {
	return &LocalEmbedder{
		run: func(texts []string) ([][]float32, error) {
			return nil, fmt.Errorf("connection refused")
		},
		destroy:   func() error { return nil },
		dimension: dimension,
	}
}

func TestLocalEmbedderErrors(t *testing.T) {
	t.Run("Embed reports an unavailable service", func(t *testing.T) {
		embedder := failingLocalEmbedder(8)

		_, err := embedder.Embed("some text")

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrServiceUnavailable), "Expected embedding failure to match ErrServiceUnavailable")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("EmbedBatch reports an unavailable service", func(t *testing.T) {
		embedder := failingLocalEmbedder(8)

		_, err := embedder.EmbedBatch([]string{"one", "two"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrServiceUnavailable), "Expected batch embedding failure to match ErrServiceUnavailable")
	})

	t.Run("EmbedBatch with no texts returns nothing", func(t *testing.T) {
		embedder := failingLocalEmbedder(8)

		vecs, err := embedder.EmbedBatch(nil)

		require.NoError(t, err)
		assert.Nil(t, vecs)
	})
}

func TestLocalEmbedderProbeDimension(t *testing.T) {
	t.Run("Probe records the embedding size", func(t *testing.T) {
		embedder := &LocalEmbedder{
			run: func(texts []string) ([][]float32, error) {
				return [][]float32{make([]float32, 384)}, nil
			},
		}

		err := embedder.probeDimension()

		require.NoError(t, err)
		assert.Equal(t, 384, embedder.Dimension())
	})

	t.Run("Probe failure keeps the underlying error", func(t *testing.T) {
		cause := fmt.Errorf("model not loaded")
		embedder := &LocalEmbedder{
			run: func(texts []string) ([][]float32, error) {
				return nil, cause
			},
		}

		err := embedder.probeDimension()

		require.Error(t, err)
		assert.True(t, errors.Is(err, cause), "Expected probe error to wrap the inference error")
	})

	t.Run("Empty probe result is reported without a wrapped nil", func(t *testing.T) {
		embedder := &LocalEmbedder{
			run: func(texts []string) ([][]float32, error) {
				return [][]float32{}, nil
			},
		}

		err := embedder.probeDimension()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no embedding returned")
		assert.NotContains(t, err.Error(), "%!w", "Expected a clean message when no cause is present")
	})
}
