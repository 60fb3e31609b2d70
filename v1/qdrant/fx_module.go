package qdrant

import (
	"context"
	"log"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
	"github.com/Aleph-Alpha/searchkit/v1/vectordb"
)

// FXModule is an fx.Module that provides and configures the Qdrant client.
// This module registers the Qdrant client with the Fx dependency injection
// framework, making it available to other components in the application,
// both as *QdrantClient and as the database-agnostic vectordb.Service.
//
// The module:
// 1. Provides the Qdrant client factory function
// 2. Provides the vectordb.Service binding backed by that client
// 3. Invokes the lifecycle registration to manage the client's lifecycle
//
// Usage:
//
//	app := fx.New(
//	    qdrant.FXModule,
//	    fx.Provide(func() *qdrant.Config {
//	        return qdrant.DefaultConfig()
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("qdrant",
	fx.Provide(
		NewQdrantClient,
		provideVectorDB,
	),
	fx.Invoke(RegisterQdrantLifecycle),
)

// QdrantParams groups the dependencies needed to create a Qdrant client
type QdrantParams struct {
	fx.In

	Config *Config

	// Observer receives per-operation reports (searches, inserts,
	// deletes). Optional; without one the client stays silent.
	Observer observability.Observer `optional:"true"`
}

// provideVectorDB exposes the client under the database-agnostic interface
// so application code can depend on vectordb.Service instead of this package.
func provideVectorDB(client *QdrantClient) vectordb.Service {
	return client
}

// QdrantLifecycleParams groups the dependencies needed for Qdrant lifecycle management
type QdrantLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *QdrantClient
}

// RegisterQdrantLifecycle registers the Qdrant client with the fx lifecycle system.
// This function sets up proper initialization and graceful shutdown of the client.
//
// The function:
//  1. On application start: Runs a health check to ensure the connection is live
//  2. On application stop: Closes the client
//
// This ensures that the Qdrant client remains available throughout the
// application's lifetime and is properly cleaned up during shutdown.
func RegisterQdrantLifecycle(params QdrantLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.healthCheck(); err != nil {
				log.Printf("[Qdrant] WARN: health check failed on startup: %v", err)
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("[Qdrant] Shutting down client")
			return params.Client.Close()
		},
	})
}
