package generate

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"

	"github.com/Prasanthk4/doc-intelligence-platform/helper"
	"github.com/Prasanthk4/doc-intelligence-platform/model"
)

// Generator produces natural-language text from a prompt. Calls are
// stateless and may take seconds; no timeout is enforced here.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Model() string
	SetModel(name string) error
}

// OllamaGenerator generates answers with a model served by a local Ollama
// instance.
type OllamaGenerator struct {
	serverURL string
	modelName string
	llm       *ollama.LLM
}

// NewOllamaGenerator connects to the Ollama server at serverURL using the
// given model name (e.g. "llama3.2:3b").
func NewOllamaGenerator(serverURL string, modelName string) (*OllamaGenerator, error) {
	g := &OllamaGenerator{serverURL: serverURL}
	if err := g.SetModel(modelName); err != nil {
		return nil, err
	}
	return g, nil
}

// Generate runs a single prompt through the model and returns the raw
// completion text.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	answer, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt)
	if err != nil {
		return "", helper.NewError("generate answer", fmt.Errorf("%w: %v", model.ErrServiceUnavailable, err))
	}
	return answer, nil
}

// Model returns the active model name.
func (g *OllamaGenerator) Model() string {
	return g.modelName
}

// SetModel switches the generation model, e.g. between the fast and deep
// presets in model.Models.
func (g *OllamaGenerator) SetModel(name string) error {
	if name == "" {
		return helper.NewError("set model", fmt.Errorf("%w: model name is empty", model.ErrInvalidInput))
	}

	llm, err := ollama.New(
		ollama.WithServerURL(g.serverURL),
		ollama.WithModel(name),
	)
	if err != nil {
		return helper.NewError("create ollama client", err)
	}

	g.llm = llm
	g.modelName = name
	return nil
}
