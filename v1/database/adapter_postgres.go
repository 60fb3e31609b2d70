package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/searchkit/v1/postgres"
)

// postgresAdapter exposes a PostgreSQL client as the engine-neutral Client.
// Every method except Query and Transaction is promoted from the embedded
// engine interface unchanged; those two are redeclared because their
// signatures mention this package's types, which Go's method sets cannot
// express through promotion.
//
// The pg field carries the concrete client for lifecycle management. It is
// nil on transaction-scoped adapters.
type postgresAdapter struct {
	postgres.Client
	pg *postgres.Postgres
}

// WrapPostgres exposes a PostgreSQL client through the engine-neutral
// Client interface.
func WrapPostgres(pg *postgres.Postgres) Client {
	return &postgresAdapter{Client: pg, pg: pg}
}

// Query starts a fluent builder for complex queries.
func (a *postgresAdapter) Query(ctx context.Context) QueryBuilder {
	return &postgresBuilder{qb: a.Client.Query(ctx)}
}

// Transaction runs fn inside a database transaction. The callback receives
// an adapter bound to the transaction.
func (a *postgresAdapter) Transaction(ctx context.Context, fn func(tx Client) error) error {
	return a.Client.Transaction(ctx, func(tx postgres.Client) error {
		return fn(&postgresAdapter{Client: tx})
	})
}

func (a *postgresAdapter) monitor() connectionMonitor {
	if a.pg == nil {
		return nil
	}
	return a.pg
}

var _ Client = (*postgresAdapter)(nil)

// postgresBuilder forwards the engine-neutral QueryBuilder to the
// PostgreSQL builder.
type postgresBuilder struct {
	qb postgres.QueryBuilder
}

func (b *postgresBuilder) Select(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Select(query, args...)
	return b
}

func (b *postgresBuilder) Where(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Where(query, args...)
	return b
}

func (b *postgresBuilder) Or(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Or(query, args...)
	return b
}

func (b *postgresBuilder) Not(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Not(query, args...)
	return b
}

func (b *postgresBuilder) Joins(query string, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Joins(query, args...)
	return b
}

func (b *postgresBuilder) Preload(query string, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Preload(query, args...)
	return b
}

func (b *postgresBuilder) Group(query string) QueryBuilder {
	b.qb = b.qb.Group(query)
	return b
}

func (b *postgresBuilder) Having(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Having(query, args...)
	return b
}

func (b *postgresBuilder) Order(value interface{}) QueryBuilder {
	b.qb = b.qb.Order(value)
	return b
}

func (b *postgresBuilder) Limit(limit int) QueryBuilder {
	b.qb = b.qb.Limit(limit)
	return b
}

func (b *postgresBuilder) Offset(offset int) QueryBuilder {
	b.qb = b.qb.Offset(offset)
	return b
}

func (b *postgresBuilder) Raw(sql string, values ...interface{}) QueryBuilder {
	b.qb = b.qb.Raw(sql, values...)
	return b
}

func (b *postgresBuilder) Model(value interface{}) QueryBuilder {
	b.qb = b.qb.Model(value)
	return b
}

func (b *postgresBuilder) Distinct(args ...interface{}) QueryBuilder {
	b.qb = b.qb.Distinct(args...)
	return b
}

func (b *postgresBuilder) Table(name string) QueryBuilder {
	b.qb = b.qb.Table(name)
	return b
}

func (b *postgresBuilder) Unscoped() QueryBuilder {
	b.qb = b.qb.Unscoped()
	return b
}

func (b *postgresBuilder) ForUpdate() QueryBuilder {
	b.qb = b.qb.ForUpdate()
	return b
}

func (b *postgresBuilder) ForUpdateSkipLocked() QueryBuilder {
	b.qb = b.qb.ForUpdateSkipLocked()
	return b
}

func (b *postgresBuilder) OnConflict(onConflict interface{}) QueryBuilder {
	b.qb = b.qb.OnConflict(onConflict)
	return b
}

func (b *postgresBuilder) Returning(columns ...string) QueryBuilder {
	b.qb = b.qb.Returning(columns...)
	return b
}

func (b *postgresBuilder) Clauses(conds ...interface{}) QueryBuilder {
	b.qb = b.qb.Clauses(conds...)
	return b
}

func (b *postgresBuilder) Scan(dest interface{}) error  { return b.qb.Scan(dest) }
func (b *postgresBuilder) Find(dest interface{}) error  { return b.qb.Find(dest) }
func (b *postgresBuilder) First(dest interface{}) error { return b.qb.First(dest) }
func (b *postgresBuilder) Last(dest interface{}) error  { return b.qb.Last(dest) }
func (b *postgresBuilder) Count(count *int64) error     { return b.qb.Count(count) }

func (b *postgresBuilder) Updates(values interface{}) (int64, error) {
	return b.qb.Updates(values)
}

func (b *postgresBuilder) Delete(value interface{}) (int64, error) {
	return b.qb.Delete(value)
}

func (b *postgresBuilder) Pluck(column string, dest interface{}) (int64, error) {
	return b.qb.Pluck(column, dest)
}

func (b *postgresBuilder) Create(value interface{}) (int64, error) {
	return b.qb.Create(value)
}

func (b *postgresBuilder) CreateInBatches(value interface{}, batchSize int) (int64, error) {
	return b.qb.CreateInBatches(value, batchSize)
}

func (b *postgresBuilder) FirstOrCreate(dest interface{}, conds ...interface{}) error {
	return b.qb.FirstOrCreate(dest, conds...)
}

func (b *postgresBuilder) Done()                { b.qb.Done() }
func (b *postgresBuilder) ToSubquery() *gorm.DB { return b.qb.ToSubquery() }

var _ QueryBuilder = (*postgresBuilder)(nil)
