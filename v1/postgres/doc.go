// Package postgres provides PostgreSQL operations built on GORM, with
// connection monitoring, standardized errors, and a persistent store for
// result pages.
//
// # Core Features
//
//   - Connection pooling with automatic reconnection
//   - CRUD operations returning rows-affected counts
//   - Fluent query builder with locking, upsert, and RETURNING support
//   - Transactions whose callbacks receive the same Client interface
//   - Error translation to stable sentinels plus retry classification
//   - Durable result page storage keyed by caller-chosen strings
//
// # Basic Usage
//
//	db, err := postgres.NewPostgres(postgres.Config{
//	    Connection: postgres.Connection{
//	        Host:    "localhost",
//	        Port:    "5432",
//	        User:    "postgres",
//	        Password: "secret",
//	        DbName:  "search",
//	        SSLMode: "disable",
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
// # Storing Result Pages
//
// Result pages survive process restarts by being written to the
// result_pages table in their canonical document encoding. The row also
// carries the page header (start index, total hits, relation, field name)
// so pages can be listed without decoding:
//
//	if err := postgres.MigratePageStore(db); err != nil {
//	    return err
//	}
//
//	err = postgres.SavePage(ctx, db, "search/cats/page-0", page, codec)
//
//	restored, err := postgres.LoadPage(ctx, db, "search/cats/page-0", codec, log)
//	if errors.Is(err, postgres.ErrRecordNotFound) {
//	    // page was never stored or has been deleted
//	}
//
//	infos, err := postgres.ListPages(ctx, db, "search/cats/")
//
// # Transactions
//
// The Transaction callback receives a Client bound to the transaction, so
// repository code does not care whether it runs transactionally:
//
//	err := db.Transaction(ctx, func(tx postgres.Client) error {
//	    if err := postgres.SavePage(ctx, tx, key, page, codec); err != nil {
//	        return err
//	    }
//	    _, err := tx.Exec(ctx, "UPDATE snapshots SET page_count = page_count + 1 WHERE id = ?", id)
//	    return err
//	})
//
// # Error Handling
//
// CRUD and query methods return raw GORM/driver errors. TranslateError
// normalizes them:
//
//	err := db.First(ctx, &row, "page_key = ?", key)
//	if errors.Is(db.TranslateError(err), postgres.ErrRecordNotFound) {
//	    // handle missing row
//	}
//
// GetErrorCategory, IsRetryable, IsTemporary, and IsCritical classify
// errors for retry loops: serialization failures and deadlocks are
// retryable, lost connections are temporary, internal database errors are
// critical.
//
// # FX Module Integration
//
//	app := fx.New(
//	    postgres.FXModule,
//	    fx.Provide(func() postgres.Config {
//	        return loadPostgresConfig()
//	    }),
//	    fx.Invoke(func(db postgres.Client) {
//	        // use db
//	    }),
//	)
//
// The module starts the connection monitor and reconnection loops with the
// application and closes the pool on shutdown.
//
// # Related Packages
//
//   - v1/database: database-agnostic Client shared with mariadb
//   - v1/resultset: the result page container stored by this package
//   - v1/document: the encoding used for the stored page blobs
package postgres
