package embedding

import "context"

// Embedder is the Embedding Service contract: order-preserving, vector i
// corresponds to input i.
type Embedder interface {
	GetEmbedding(ctx context.Context, query string) ([]float32, error)
	BatchEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}
