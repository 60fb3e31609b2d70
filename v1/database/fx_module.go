package database

import (
	"context"
	"fmt"
	"log"
	"sync"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/searchkit/v1/mariadb"
	"github.com/Aleph-Alpha/searchkit/v1/postgres"
)

// FXModule provides database.Client via dependency injection.
// It selects the engine (postgres or mariadb) based on the provided Config
// and manages the connection monitoring loops and graceful shutdown, so
// the engine-specific fx modules are not needed alongside it.
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{...})
//	    }),
//	    fx.Invoke(func(db database.Client) {
//	        // use db
//	    }),
//	)
var FXModule = fx.Module("database",
	fx.Provide(NewClientWithDI),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create a database client.
type DatabaseParams struct {
	fx.In

	Config Config
}

// DatabaseLifecycleParams groups the dependencies needed for database
// lifecycle management.
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    Client
}

// NewClientWithDI creates a database client using dependency injection.
// The engine is selected based on Config.Type and wrapped behind the
// engine-neutral Client interface.
func NewClientWithDI(params DatabaseParams) (Client, error) {
	switch params.Config.Type {
	case "postgres":
		if params.Config.Postgres == nil {
			return nil, fmt.Errorf("postgres config is required when type=postgres")
		}
		pg, err := postgres.NewPostgres(*params.Config.Postgres)
		if err != nil {
			return nil, err
		}
		return WrapPostgres(pg), nil

	case "mariadb":
		if params.Config.MariaDB == nil {
			return nil, fmt.Errorf("mariadb config is required when type=mariadb")
		}
		db, err := mariadb.NewMariaDB(*params.Config.MariaDB)
		if err != nil {
			return nil, err
		}
		return WrapMariaDB(db), nil

	default:
		return nil, fmt.Errorf("unsupported database type: %s (must be 'postgres' or 'mariadb')", params.Config.Type)
	}
}

// connectionMonitor is the engine-side pair of loops that keep the
// connection healthy. Both engine clients implement it; the adapters hand
// it out through monitor().
type connectionMonitor interface {
	MonitorConnection(ctx context.Context)
	RetryConnection(ctx context.Context)
}

// monitorProvider is implemented by the adapters in this package.
type monitorProvider interface {
	monitor() connectionMonitor
}

// RegisterDatabaseLifecycle wires the selected engine into the fx
// lifecycle: connection monitoring and automatic reconnection start with
// the application, and the connection pool is closed on shutdown.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	wg := &sync.WaitGroup{}
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			mp, ok := params.Client.(monitorProvider)
			if !ok {
				return nil
			}
			mon := mp.monitor()
			if mon == nil {
				return nil
			}

			// The start context is canceled once startup completes, so the
			// monitoring goroutines run on a background context and stop
			// via the engine's shutdown signal instead.
			wg.Add(1)
			go func() {
				defer wg.Done()
				mon.MonitorConnection(context.Background())
			}()

			wg.Add(1)
			go func() {
				defer wg.Done()
				mon.RetryConnection(context.Background())
			}()

			log.Println("INFO: Database client initialized")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("INFO: Shutting down database client")
			if err := params.Client.GracefulShutdown(); err != nil {
				return err
			}
			wg.Wait()
			return nil
		},
	})
}
