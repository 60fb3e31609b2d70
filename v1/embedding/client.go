package embedding

import (
	"context"
	"fmt"
)

// Client is the public entrypoint for computing embeddings.
//
// It hides all provider details (inference endpoints, HTTP, etc.)
// from the application layer.
type Client struct {
	provider Provider
	model    string
}

// NewClient constructs a Client from Config.
// It validates the config and internally constructs the inference provider.
// Application code should depend on *Client, not on Provider.
func NewClient(cfg *Config) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("embedding: invalid config: %w", err)
	}

	p, err := newInferenceProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("embedding: failed to create provider: %w", err)
	}

	return &Client{provider: p, model: cfg.Model}, nil
}

// CreateEmbeddings generates one embedding per text. An empty model falls
// back to the configured default.
func (c *Client) CreateEmbeddings(ctx context.Context, model string, texts ...string) ([][]float64, error) {
	return c.provider.Create(ctx, c.resolveModel(model), texts...)
}

// CreateVectors generates embeddings narrowed to float32, the element type
// vector stores index. One vector per text, in input order.
func (c *Client) CreateVectors(ctx context.Context, model string, texts ...string) ([][]float32, error) {
	embeddings, err := c.provider.Create(ctx, c.resolveModel(model), texts...)
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(embeddings))
	for i, emb := range embeddings {
		out[i] = toFloat32(emb)
	}
	return out, nil
}

// CreateQueryVector embeds a single query text for use in a vector search
// request.
func (c *Client) CreateQueryVector(ctx context.Context, model, text string) ([]float32, error) {
	vectors, err := c.CreateVectors(ctx, model, text)
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (c *Client) resolveModel(model string) string {
	if model == "" {
		return c.model
	}
	return model
}

// Close allows the client to release any internal resources used by the provider.
// Currently this is a no-op unless the provider implements Close().
func (c *Client) Close() error {
	if closer, ok := c.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
