// Package mariadb provides MariaDB/MySQL operations built on GORM, behind
// the same client surface as v1/postgres so the two engines are
// interchangeable behind v1/database.
//
// # Core Features
//
//   - Connection pooling with automatic reconnection
//   - CRUD operations returning rows-affected counts
//   - Fluent query builder matching the v1/postgres method set
//   - Transactions whose callbacks receive the same Client interface
//   - Error translation to stable sentinels plus retry classification
//
// # Basic Usage
//
//	db, err := mariadb.NewMariaDB(mariadb.Config{
//	    Connection: mariadb.Connection{
//	        Host:      "localhost",
//	        Port:      "3306",
//	        User:      "root",
//	        Password:  "secret",
//	        DbName:    "search",
//	        ParseTime: true,
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer db.GracefulShutdown()
//
//	var docs []Document
//	err = db.Query(ctx).
//	    Where("indexed = ?", true).
//	    Order("updated_at DESC").
//	    Limit(20).
//	    Find(&docs)
//
// Set ParseTime whenever models carry time.Time fields; without it the
// driver scans DATE and DATETIME columns as []byte and GORM fails.
//
// # Dialect Notes
//
// The query builder keeps the v1/postgres surface; a few methods behave
// differently on this dialect:
//
//   - OnConflict renders as ON DUPLICATE KEY UPDATE and fires on any
//     unique key violation, not just the listed columns
//   - ForUpdateSkipLocked needs MariaDB 10.6 or MySQL 8.0
//   - Returning is honoured by MariaDB 10.5+ for INSERT and DELETE only
//   - Row-level locking requires InnoDB tables and an explicit transaction
//
// # Error Handling
//
// CRUD and query methods return raw GORM/driver errors. TranslateError
// normalizes server error numbers (1062, 1452, 1213, ...) and client-side
// connection failures to the package sentinels:
//
//	err := db.Create(ctx, &row)
//	if errors.Is(db.TranslateError(err), mariadb.ErrDuplicateKey) {
//	    // handle duplicate
//	}
//
// GetErrorCategory, IsRetryable, IsTemporary, and IsCritical classify
// errors for retry loops: deadlocks and lock wait timeouts are retryable,
// lost connections are temporary, disk-full conditions are critical.
//
// # FX Module Integration
//
//	app := fx.New(
//	    mariadb.FXModule,
//	    fx.Provide(func() mariadb.Config {
//	        return loadMariaDBConfig()
//	    }),
//	    fx.Invoke(func(db mariadb.Client) {
//	        // use db
//	    }),
//	)
//
// # Related Packages
//
//   - v1/database: selects between this package and v1/postgres by config,
//     and hosts the engine-neutral result page store
//   - v1/postgres: the primary engine, including the page store schema
package mariadb
