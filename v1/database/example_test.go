package database_test

import (
	"context"
	"testing"

	"github.com/Aleph-Alpha/searchkit/v1/database"
	"github.com/Aleph-Alpha/searchkit/v1/mariadb"
	"github.com/Aleph-Alpha/searchkit/v1/postgres"
)

// Example showing how to create a PostgreSQL config
func ExamplePostgresConfig() {
	cfg := database.PostgresConfig(postgres.Config{
		Connection: postgres.Connection{
			Host:   "localhost",
			Port:   "5432",
			User:   "myuser",
			DbName: "mydb",
		},
	})

	_ = cfg // Use the config with database.FXModule
}

// Example showing how to select the engine from application configuration
func ExampleConfig() {
	createDatabase := func(dbType string) database.Config {
		switch dbType {
		case "postgres":
			return database.PostgresConfig(postgres.Config{
				Connection: postgres.Connection{
					Host: "localhost",
					Port: "5432",
				},
			})
		case "mariadb":
			return database.MariaDBConfig(mariadb.Config{
				Connection: mariadb.Connection{
					Host:      "localhost",
					Port:      "3306",
					ParseTime: true,
				},
			})
		default:
			return database.Config{}
		}
	}

	cfg := createDatabase("postgres")
	_ = cfg // Pass to database.FXModule or NewClientWithDI
}

// Test that config helpers work correctly
func TestConfigHelpers(t *testing.T) {
	t.Run("PostgresConfig", func(t *testing.T) {
		cfg := database.PostgresConfig(postgres.Config{
			Connection: postgres.Connection{
				Host: "localhost",
				Port: "5432",
			},
		})

		if cfg.Type != "postgres" {
			t.Errorf("expected type=postgres, got %s", cfg.Type)
		}
		if cfg.Postgres == nil {
			t.Fatal("expected Postgres config to be set")
		}
		if cfg.Postgres.Connection.Host != "localhost" {
			t.Errorf("expected host=localhost, got %s", cfg.Postgres.Connection.Host)
		}
	})

	t.Run("MariaDBConfig", func(t *testing.T) {
		cfg := database.MariaDBConfig(mariadb.Config{
			Connection: mariadb.Connection{
				Host: "localhost",
				Port: "3306",
			},
		})

		if cfg.Type != "mariadb" {
			t.Errorf("expected type=mariadb, got %s", cfg.Type)
		}
		if cfg.MariaDB == nil {
			t.Fatal("expected MariaDB config to be set")
		}
		if cfg.MariaDB.Connection.Port != "3306" {
			t.Errorf("expected port=3306, got %s", cfg.MariaDB.Connection.Port)
		}
	})
}

// Example showing an engine-agnostic repository
type PageIndex struct {
	db database.Client
}

func NewPageIndex(db database.Client) *PageIndex {
	return &PageIndex{db: db}
}

func (r *PageIndex) FieldNames(ctx context.Context) ([]string, error) {
	var names []string
	_, err := r.db.Query(ctx).
		Model(&postgres.ResultPage{}).
		Distinct().
		Pluck("field_name", &names)
	return names, err
}

func ExampleWrapPostgres() {
	pg, err := postgres.NewPostgres(postgres.Config{
		Connection: postgres.Connection{
			Host:   "localhost",
			Port:   "5432",
			User:   "myuser",
			DbName: "mydb",
		},
	})
	if err != nil {
		return
	}
	defer pg.GracefulShutdown()

	index := NewPageIndex(database.WrapPostgres(pg))
	_ = index // Use in your application
}
