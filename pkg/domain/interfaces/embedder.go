package interfaces

import "context"

// Embedder converts text into a fixed-length embedding vector. The
// function is deterministic for identical input; the vector length always
// equals Dimensions().
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
