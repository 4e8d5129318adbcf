package embedding

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/swasthya-lab/swasthya/pkg/domain/model"
)

// MockEmbedder produces deterministic embeddings from a hash of the input
// text. Identical text always maps to the identical unit vector, which is
// enough for tests and for running the service without API credentials.
type MockEmbedder struct {
	dimensions int
}

// NewMock creates a mock embedder with the standard dimension
func NewMock() *MockEmbedder {
	return &MockEmbedder{
		dimensions: model.EmbeddingDimension,
	}
}

// Embed creates a deterministic embedding from text
func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	embedding := make([]float32, m.dimensions)
	for i := 0; i < m.dimensions; i++ {
		// LCG over the hash seed
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}

	return normalize(embedding), nil
}

// Dimensions returns the embedding vector size
func (m *MockEmbedder) Dimensions() int {
	return m.dimensions
}

// normalize converts the vector to unit length
func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}

	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = v / norm
	}

	return normalized
}
