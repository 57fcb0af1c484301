package generate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

func TestNewOllamaGenerator(t *testing.T) {
	t.Run("Valid call NewOllamaGenerator", func(t *testing.T) {
		generator, err := NewOllamaGenerator("http://localhost:11434", model.Models["fast"].Name)
		assert.NoError(t, err, "Expected NewOllamaGenerator to not return an error")
		require.NotNil(t, generator)
		assert.Equal(t, model.Models["fast"].Name, generator.Model())
	})

	t.Run("Invalid call NewOllamaGenerator with empty model", func(t *testing.T) {
		_, err := NewOllamaGenerator("http://localhost:11434", "")
		require.Error(t, err, "Expected error for empty model name")
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})
}

func TestOllamaGeneratorSetModel(t *testing.T) {
	generator, err := NewOllamaGenerator("http://localhost:11434", model.Models["fast"].Name)
	require.NoError(t, err)

	t.Run("Switch to another model", func(t *testing.T) {
		err := generator.SetModel(model.Models["deep"].Name)
		assert.NoError(t, err, "Expected SetModel to not return an error")
		assert.Equal(t, model.Models["deep"].Name, generator.Model())
	})

	t.Run("Empty model name is rejected and keeps the old model", func(t *testing.T) {
		err := generator.SetModel("")
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Equal(t, model.Models["deep"].Name, generator.Model())
	})
}

func TestOllamaGeneratorUnreachableServer(t *testing.T) {
	// Port 1 is never serving, so the call fails fast with a connection error.
	generator, err := NewOllamaGenerator("http://127.0.0.1:1", model.Models["fast"].Name)
	require.NoError(t, err)

	_, err = generator.Generate(context.Background(), "test prompt")

	require.Error(t, err, "Expected Generate against unreachable server to fail")
	assert.ErrorIs(t, err, model.ErrServiceUnavailable)
}
