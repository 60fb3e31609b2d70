// Package embedding provides a unified, high-level API for computing text
// embeddings through an OpenAI-compatible inference service.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides all
// low-level HTTP details, endpoint paths, and authentication.
//
// A client is constructed using:
//
//	client, err := embedding.NewClient(cfg)
//
// Once created, the client can generate embeddings via:
//
//	client.CreateEmbeddings(ctx, "luminous-base", "hello", "world")
//
// The model argument may be left empty when the configuration names a
// default model.
//
// # Feeding Vector Search
//
// Inference services report embeddings as float64 values, while vector
// stores index float32. The client offers two helpers that perform the
// narrowing, so search code never handles raw embeddings:
//
//	vec, err := client.CreateQueryVector(ctx, "", "which results matched?")
//	if err != nil { ... }
//
//	responses, err := db.Search(ctx, vectordb.SearchRequest{
//	    CollectionName: "documents",
//	    Vector:         vec,
//	    Limit:          10,
//	})
//
// CreateVectors is the batch counterpart for indexing flows: one float32
// vector per input text, in input order, ready for insertion payloads.
//
// # Configuration
//
// Configuration is sourced from environment variables and constructed by:
//
//	cfg := embedding.NewConfig()
//
// Required variables:
//
//   - EMBEDDING_ENDPOINT
//     Base URL of the inference service (no trailing path or slash).
//     The provider appends /v1/embeddings itself.
//
//   - EMBEDDING_SERVICE_TOKEN
//     Service token used for bearer authentication.
//
// Optional variables:
//
//   - EMBEDDING_MODEL
//     Default model used when a call passes an empty model name.
//
//   - EMBEDDING_HTTP_TIMEOUT_SECONDS
//     Request timeout (default: 30 seconds).
//
// Configuration correctness can be verified via:
//
//	if err := cfg.Validate(); err != nil { ... }
//
// # Dependency Injection (Fx)
//
// A ready-to-use Fx module is provided:
//
//	embedding.FXModule
//
// which supplies:
//
//   - *embedding.Config
//   - *embedding.Client
//
// and registers a lifecycle hook to clean up HTTP resources on shutdown.
//
// Example:
//
//	app := fx.New(
//	    embedding.FXModule,
//	    fx.Invoke(func(c *embedding.Client) {
//	        // Use embeddings
//	    }),
//	)
//
// # Design Notes
//
//   - Only a single provider implementation exists (inferenceProvider). It is
//     unexported on purpose to keep all endpoint-level complexity internal.
//
//   - The Client exposes a stable, minimal API surface:
//     CreateEmbeddings
//     CreateVectors
//     CreateQueryVector
//     with JSON shapes, authentication, and the float32 narrowing handled
//     internally.
//
//   - The provider posts to the OpenAI-compatible /v1/embeddings endpoint
//     with a {"model": ..., "input": [...]} body and reads the embeddings
//     from the response's data array, in order.
package embedding
