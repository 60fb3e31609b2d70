package mariadb

import (
	"context"
	"sync"

	"go.uber.org/fx"
)

// FXModule is an fx module that provides the MariaDB database component.
// It registers the constructor for dependency injection and sets up
// lifecycle hooks for connection monitoring and graceful shutdown.
//
// The module provides both the concrete *MariaDB (used internally for
// lifecycle management) and the Client interface for consumers.
var FXModule = fx.Module("mariadb",
	fx.Provide(
		NewMariaDBClientWithDI,
		fx.Annotate(
			ProvideClient,
			fx.As(new(Client)),
		),
	),
	fx.Invoke(RegisterMariaDBLifecycle),
)

// ProvideClient exposes the concrete *MariaDB as the Client interface so
// applications can depend on the abstraction.
func ProvideClient(db *MariaDB) Client {
	return db
}

// MariaDBParams groups the dependencies needed to create a MariaDB client
// via dependency injection. The embedded fx.In marker makes fx inject the
// fields from the container.
type MariaDBParams struct {
	fx.In

	Config Config
}

// NewMariaDBClientWithDI creates a MariaDB client for the fx container.
// It delegates to NewMariaDB; the split exists so the constructor can grow
// injected dependencies without changing the plain constructor.
//
// Example:
//
//	app := fx.New(
//	    mariadb.FXModule,
//	    fx.Provide(func() mariadb.Config {
//	        return loadMariaDBConfig()
//	    }),
//	)
func NewMariaDBClientWithDI(params MariaDBParams) (*MariaDB, error) {
	return NewMariaDB(params.Config)
}

// MariaDBLifeCycleParams groups the dependencies needed for MariaDB
// lifecycle management.
type MariaDBLifeCycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	MariaDB   *MariaDB
}

// RegisterMariaDBLifecycle wires the MariaDB client into the fx lifecycle:
// connection monitoring and automatic reconnection start with the
// application, and the connection pool is closed on shutdown. A WaitGroup
// ensures both goroutines have finished before shutdown completes.
func RegisterMariaDBLifecycle(params MariaDBLifeCycleParams) {
	wg := &sync.WaitGroup{}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// The start context is canceled once startup completes, so the
			// monitoring goroutines run on a background context and stop
			// via the shutdown signal instead.
			wg.Add(1)
			go func() {
				defer wg.Done()
				params.MariaDB.MonitorConnection(context.Background())
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				params.MariaDB.RetryConnection(context.Background())
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := params.MariaDB.GracefulShutdown(); err != nil {
				return err
			}
			wg.Wait()
			return nil
		},
	})
}
