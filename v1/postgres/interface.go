package postgres

import (
	"context"

	"gorm.io/gorm"
)

// Client is the PostgreSQL client interface implemented by *Postgres.
//
// CRUD and query methods return raw GORM/driver errors. Use TranslateError
// to normalize them to this package's exported sentinels (ErrRecordNotFound,
// ErrDuplicateKey, ...), especially when working through the interface,
// e.g. inside Transaction callbacks.
type Client interface {
	// Basic CRUD operations. Mutating operations return the number of
	// rows affected.
	Find(ctx context.Context, dest interface{}, conditions ...interface{}) error
	First(ctx context.Context, dest interface{}, conditions ...interface{}) error
	Create(ctx context.Context, value interface{}) error
	Save(ctx context.Context, value interface{}) error
	Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error)
	UpdateColumn(ctx context.Context, model interface{}, columnName string, value interface{}) (int64, error)
	UpdateColumns(ctx context.Context, model interface{}, columnValues map[string]interface{}) (int64, error)
	Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error)
	Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error
	UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error)
	Exec(ctx context.Context, sql string, values ...interface{}) (int64, error)

	// Query starts a fluent builder for complex queries.
	Query(ctx context.Context) QueryBuilder

	// Transaction runs fn inside a database transaction. The callback
	// receives a Client so the same code works inside and outside
	// transactions.
	Transaction(ctx context.Context, fn func(tx Client) error) error

	// DB grants raw GORM access for cases the interface does not cover.
	DB() *gorm.DB

	// Error translation and classification.
	TranslateError(err error) error
	GetErrorCategory(err error) ErrorCategory
	IsRetryable(err error) bool
	IsTemporary(err error) bool
	IsCritical(err error) bool

	// Lifecycle management.
	GracefulShutdown() error
}

// QueryBuilder provides a fluent interface for building complex queries.
// Modifier methods return the builder for chaining; terminal operations
// execute the assembled query.
//
// Example:
//
//	var users []User
//	err := db.Query(ctx).
//	    Where("age > ?", 18).
//	    Order("created_at DESC").
//	    Limit(10).
//	    Find(&users)
type QueryBuilder interface {
	// Query modifiers.
	Select(query interface{}, args ...interface{}) QueryBuilder
	Where(query interface{}, args ...interface{}) QueryBuilder
	Or(query interface{}, args ...interface{}) QueryBuilder
	Not(query interface{}, args ...interface{}) QueryBuilder
	Joins(query string, args ...interface{}) QueryBuilder
	Preload(query string, args ...interface{}) QueryBuilder
	Group(query string) QueryBuilder
	Having(query interface{}, args ...interface{}) QueryBuilder
	Order(value interface{}) QueryBuilder
	Limit(limit int) QueryBuilder
	Offset(offset int) QueryBuilder
	Raw(sql string, values ...interface{}) QueryBuilder
	Model(value interface{}) QueryBuilder
	Distinct(args ...interface{}) QueryBuilder
	Table(name string) QueryBuilder
	Unscoped() QueryBuilder

	// Row-level locking.
	ForUpdate() QueryBuilder
	ForUpdateSkipLocked() QueryBuilder

	// Conflict handling and returning. OnConflict expects a
	// clause.OnConflict value.
	OnConflict(onConflict interface{}) QueryBuilder
	Returning(columns ...string) QueryBuilder

	// Clauses adds custom GORM clause expressions.
	Clauses(conds ...interface{}) QueryBuilder

	// Terminal operations.
	Scan(dest interface{}) error
	Find(dest interface{}) error
	First(dest interface{}) error
	Last(dest interface{}) error
	Count(count *int64) error
	Updates(values interface{}) (int64, error)
	Delete(value interface{}) (int64, error)
	Pluck(column string, dest interface{}) (int64, error)
	Create(value interface{}) (int64, error)
	CreateInBatches(value interface{}, batchSize int) (int64, error)
	FirstOrCreate(dest interface{}, conds ...interface{}) error

	// Utility methods.
	Done()                // Finalize builder (currently a no-op)
	ToSubquery() *gorm.DB // Convert to GORM subquery
}

var _ Client = (*Postgres)(nil)
