package kafka

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
	"github.com/Aleph-Alpha/searchkit/v1/schema_registry"
)

// FXModule registers the Kafka client with the fx dependency injection
// framework.
//
// The module provides:
//  1. *KafkaClient (concrete type) for direct use
//  2. Client interface for dependency injection
//  3. Lifecycle management for shutdown
//
// Usage:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    // other modules...
//	)
var FXModule = fx.Module("kafka",
	fx.Provide(
		NewClientWithDI, // Provides *KafkaClient
		// Also provide the Client interface
		fx.Annotate(
			func(k *KafkaClient) Client { return k },
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterKafkaLifecycle),
)

// KafkaParams groups the dependencies needed to create the client.
// Logger, Observer and Registry are optional; the registry is adopted
// from the graph only when the config names a SchemaSubject, so a
// registry provided for other purposes does not force framing onto
// every topic.
type KafkaParams struct {
	fx.In

	Config   Config
	Logger   Logger                   `optional:"true"`
	Observer observability.Observer   `optional:"true"`
	Registry schema_registry.Registry `optional:"true"`
}

// NewClientWithDI creates the Kafka client for the fx container. The
// logger and registry go into the config rather than onto the client,
// because the driver's error logger and the schema registration
// capture them when the writer and reader are created.
//
// Example usage with fx:
//
//	app := fx.New(
//	    kafka.FXModule,
//	    schema_registry.FXModule, // Optional: enables framing
//	    logger.FXModule,          // Optional: provides the logger
//	    fx.Provide(
//	        func() kafka.Config {
//	            return loadKafkaConfig()
//	        },
//	    ),
//	)
func NewClientWithDI(params KafkaParams) (*KafkaClient, error) {
	cfg := params.Config
	if cfg.Logger == nil {
		cfg.Logger = params.Logger
	}
	if cfg.Registry == nil && cfg.SchemaSubject != "" {
		cfg.Registry = params.Registry
	}

	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	if params.Observer != nil {
		client = client.WithObserver(params.Observer)
	}

	return client, nil
}

// KafkaLifecycleParams groups the dependencies for lifecycle
// management.
type KafkaLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *KafkaClient
}

// RegisterKafkaLifecycle ties the client to the fx lifecycle. The
// driver connects lazily on the first produce or fetch, so only the
// stop side does real work.
func RegisterKafkaLifecycle(params KafkaLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			params.Client.logInfo(ctx, "Kafka client ready", map[string]interface{}{
				"topic": params.Client.cfg.Topic,
			})
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			return nil
		},
	})
}

// GracefulShutdown closes the writer and reader cleanly. It first
// signals all fetch workers to stop, then closes the driver resources
// under the lock. Close errors are logged, not returned; nothing can
// act on them this late.
func (k *KafkaClient) GracefulShutdown() {
	k.closeShutdownOnce.Do(func() {
		if k.shutdownSignal != nil {
			close(k.shutdownSignal)
		}
	})

	k.mu.Lock()
	defer k.mu.Unlock()

	k.logInfo(context.Background(), "Shutting down Kafka client", nil)

	if k.writer != nil {
		if err := k.writer.Close(); err != nil {
			k.logWarn(context.Background(), "Failed to close kafka writer", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
	if k.reader != nil {
		if err := k.reader.Close(); err != nil {
			k.logWarn(context.Background(), "Failed to close kafka reader", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// Close is an alias for GracefulShutdown, for callers that expect the
// usual closer verb.
func (k *KafkaClient) Close() {
	k.GracefulShutdown()
}
