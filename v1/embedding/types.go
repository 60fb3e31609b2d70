package embedding

import "context"

// Provider turns texts into embedding vectors. The Client sits on top
// of a Provider; the package's own provider speaks the OpenAI-style
// /v1/embeddings protocol.
type Provider interface {
	// Create generates one embedding per text using the given model.
	// Vectors come back in input order.
	Create(ctx context.Context, model string, texts ...string) ([][]float64, error)
}
