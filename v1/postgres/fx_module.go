package postgres

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule is an fx module that provides the Postgres database component.
// It registers the constructor for dependency injection and sets up
// lifecycle hooks for connection monitoring and graceful shutdown.
//
// The module provides both the concrete *Postgres (used internally for
// lifecycle management) and the Client interface for consumers.
var FXModule = fx.Module("postgres",
	fx.Provide(
		NewPostgresClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterPostgresLifecycle),
)

// ProvideClient exposes the concrete *Postgres as the Client interface so
// applications can depend on the abstraction.
func ProvideClient(pg *Postgres) Client {
	return pg
}

// PostgresParams groups the dependencies needed to create a Postgres client
// via dependency injection. The embedded fx.In marker makes fx inject the
// fields from the container.
type PostgresParams struct {
	fx.In

	Config Config
}

// NewPostgresClientWithDI creates a Postgres client for the fx container.
// It delegates to NewPostgres; the split exists so the constructor can grow
// injected dependencies without changing the plain constructor.
//
// Example:
//
//	app := fx.New(
//	    postgres.FXModule,
//	    fx.Provide(func() postgres.Config {
//	        return loadPostgresConfig()
//	    }),
//	)
func NewPostgresClientWithDI(params PostgresParams) (*Postgres, error) {
	return NewPostgres(params.Config)
}

// PostgresLifeCycleParams groups the dependencies needed for Postgres
// lifecycle management.
type PostgresLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Postgres  *Postgres
}

// RegisterPostgresLifecycle wires the Postgres client into the fx lifecycle:
// connection monitoring and automatic reconnection start with the
// application, and the connection pool is closed on shutdown. A WaitGroup
// ensures both goroutines have finished before shutdown completes.
func RegisterPostgresLifecycle(params PostgresLifeCycleParams) {
	wg := &sync.WaitGroup{}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The start context is canceled once startup completes, so the
			// monitoring goroutines run on a background context and stop
			// via the shutdown signal instead.
			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Postgres.MonitorConnection(context.Background())
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Postgres.RetryConnection(context.Background())
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := params.Postgres.GracefulShutdown(); err != nil {
				return err
			}
			wg.Wait()
			return nil
		},
	})
}
