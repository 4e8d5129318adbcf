package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
)

// GeminiEmbedder generates embeddings with the Gemini embedding endpoint
// through a gollem LLM client. Vectors are requested at
// model.EmbeddingDimension so that every backend shares one collection
// geometry.
type GeminiEmbedder struct {
	llmClient  gollem.LLMClient
	dimensions int
}

// NewGemini creates an embedder backed by the given LLM client
func NewGemini(llmClient gollem.LLMClient) (*GeminiEmbedder, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}

	return &GeminiEmbedder{
		llmClient:  llmClient,
		dimensions: model.EmbeddingDimension,
	}, nil
}

// Embed converts text into an embedding vector
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.llmClient.GenerateEmbedding(ctx, e.dimensions, []string{text})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate embedding")
	}

	if len(embeddings) == 0 {
		return nil, goerr.New("no embedding returned")
	}

	// Convert float64 to float32
	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}

	return result, nil
}

// Dimensions returns the embedding vector size
func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}
