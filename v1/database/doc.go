// Package database provides a unified interface for SQL database
// operations, selecting between the v1/postgres and v1/mariadb engines by
// configuration.
//
// # Design
//
// The engine packages expose structurally identical Client interfaces, but
// Go treats them as unrelated types because their Transaction callbacks
// and Query builders mention the engine's own interface. This package
// bridges that gap with thin adapters: WrapPostgres and WrapMariaDB embed
// the engine client and redeclare only Query and Transaction, so every
// other call goes straight to the engine with no indirection.
//
// Applications depend on database.Client and stay engine-agnostic:
//
//	type PageRepository struct {
//	    db database.Client
//	}
//
//	func NewPageRepository(db database.Client) *PageRepository {
//	    return &PageRepository{db: db}
//	}
//
// # Selecting an Engine
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{
//	            Connection: postgres.Connection{
//	                Host:   "localhost",
//	                Port:   "5432",
//	                User:   "postgres",
//	                DbName: "search",
//	            },
//	        })
//	    }),
//	    fx.Invoke(func(db database.Client) {
//	        // use db
//	    }),
//	)
//
// Swapping the provider for database.MariaDBConfig(...) is the only change
// needed to run on MariaDB. FXModule starts the engine's connection
// monitoring loops and closes the pool on shutdown, so the engine-specific
// fx modules are not needed alongside it. Without fx, construct the engine
// directly and wrap it:
//
//	pg, err := postgres.NewPostgres(cfg)
//	if err != nil {
//	    return err
//	}
//	db := database.WrapPostgres(pg)
//
// # Storing Result Pages
//
// The package carries an engine-neutral version of the result page store
// from v1/postgres. Pages are written to the result_pages table in their
// canonical document encoding on whichever engine is configured:
//
//	if err := database.MigratePageStore(db); err != nil {
//	    return err
//	}
//
//	err = database.SavePage(ctx, db, "search/cats/page-0", page, codec)
//
//	restored, err := database.LoadPage(ctx, db, "search/cats/page-0", codec, log)
//	if errors.Is(err, database.ErrPageNotFound) {
//	    // page was never stored or has been deleted
//	}
//
// The store functions accept a Client, so they compose with Transaction:
//
//	err := db.Transaction(ctx, func(tx database.Client) error {
//	    if err := database.SavePage(ctx, tx, key, page, codec); err != nil {
//	        return err
//	    }
//	    _, err := tx.Exec(ctx, "UPDATE snapshots SET page_count = page_count + 1 WHERE id = ?", id)
//	    return err
//	})
//
// # Error Handling
//
// CRUD and query methods return raw GORM/driver errors. TranslateError
// normalizes them to the configured engine's sentinels; IsRetryable,
// IsTemporary, and IsCritical classify them for retry loops. Engine-neutral
// code can also compare against GORM's own sentinels, which both engines
// produce for the common cases:
//
//	err := db.First(ctx, &row, "id = ?", id)
//	if errors.Is(err, gorm.ErrRecordNotFound) {
//	    // missing row, same check on both engines
//	}
//
// # Dialect Differences
//
// The shared QueryBuilder keeps behavior differences small but visible:
//
//   - Row-level locking works standalone on PostgreSQL; MariaDB needs
//     InnoDB tables and an explicit transaction
//   - OnConflict renders as ON CONFLICT on PostgreSQL and as
//     ON DUPLICATE KEY UPDATE on MariaDB/MySQL
//   - Returning works for all statements on PostgreSQL; MariaDB honours
//     it for INSERT and DELETE from 10.5 on
//
// Locking reads belong inside Transaction on both engines:
//
//	err := db.Transaction(ctx, func(tx database.Client) error {
//	    var page postgres.ResultPage
//	    return tx.Query(ctx).
//	        Where("page_key = ?", key).
//	        ForUpdate().
//	        First(&page)
//	})
//
// # Related Packages
//
//   - v1/postgres: the primary engine, including the page store schema
//   - v1/mariadb: the alternate engine
//   - v1/resultset: the result page container stored by the page store
package database
