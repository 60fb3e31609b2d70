package minio

import (
	"context"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/observability"
)

// FXModule is an fx module that provides the MinIO storage component.
// It registers the client constructor for dependency injection and sets up
// lifecycle hooks for connection monitoring and graceful shutdown.
//
// The module provides both the concrete *MinioClient (for lifecycle
// management) and the Client interface (for application code).
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClientWithDI, // Returns *MinioClient for internal lifecycle
		fx.Annotate(
			ProvideClient,      // Returns Client interface
			fx.As(new(Client)), // Expose as Client interface
		),
	),
	fx.Invoke(RegisterMinioLifecycle),
)

// ProvideClient wraps the concrete *MinioClient and returns it as the Client
// interface, so applications depend on the interface rather than the
// concrete type.
func ProvideClient(m *MinioClient) Client {
	return m
}

// MinioParams groups the dependencies needed to create a MinIO client via
// dependency injection. The embedded fx.In marker enables automatic
// injection of the fields from the dependency container.
type MinioParams struct {
	fx.In

	Config Config

	// Observer receives per-operation reports (durations, sizes, errors).
	// Optional; without one the client stays silent.
	Observer observability.Observer `optional:"true"`

	// Logger receives lifecycle and connection-monitor events. Optional.
	Logger Logger `optional:"true"`
}

// NewClientWithDI creates a MinIO client using dependency injection,
// attaching the optional observer and logger when present.
func NewClientWithDI(p MinioParams) (*MinioClient, error) {
	client, err := NewClient(p.Config)
	if err != nil {
		return nil, err
	}
	if p.Observer != nil {
		client = client.WithObserver(p.Observer)
	}
	if p.Logger != nil {
		client = client.WithLogger(p.Logger)
	}
	return client, nil
}

// MinioLifecycleParams groups the dependencies needed for lifecycle
// management of the MinIO client.
type MinioLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *MinioClient
}

// RegisterMinioLifecycle registers lifecycle hooks for the MinIO component.
// On start it launches the connection monitor and reconnection goroutines;
// on stop it signals them to exit and waits for them before releasing
// resources.
func RegisterMinioLifecycle(params MinioLifecycleParams) {
	wg := &sync.WaitGroup{}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The start context is canceled once startup completes, so the
			// monitors run on a background context and stop via the
			// shutdown signal instead.
			monitorCtx := context.Background()

			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Client.monitorConnection(monitorCtx)
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Client.retryConnection(monitorCtx)
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Client.GracefulShutdown()
			wg.Wait()
			return nil
		},
	})
}
