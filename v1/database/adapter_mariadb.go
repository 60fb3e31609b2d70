package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/Aleph-Alpha/searchkit/v1/mariadb"
)

// mariadbAdapter exposes a MariaDB/MySQL client as the engine-neutral
// Client. It mirrors postgresAdapter; see there for why Query and
// Transaction are redeclared.
type mariadbAdapter struct {
	mariadb.Client
	db *mariadb.MariaDB
}

// WrapMariaDB exposes a MariaDB/MySQL client through the engine-neutral
// Client interface.
func WrapMariaDB(db *mariadb.MariaDB) Client {
	return &mariadbAdapter{Client: db, db: db}
}

// Query starts a fluent builder for complex queries.
func (a *mariadbAdapter) Query(ctx context.Context) QueryBuilder {
	return &mariadbBuilder{qb: a.Client.Query(ctx)}
}

// Transaction runs fn inside a database transaction. The callback receives
// an adapter bound to the transaction.
func (a *mariadbAdapter) Transaction(ctx context.Context, fn func(tx Client) error) error {
	return a.Client.Transaction(ctx, func(tx mariadb.Client) error {
		return fn(&mariadbAdapter{Client: tx})
	})
}

func (a *mariadbAdapter) monitor() connectionMonitor {
	if a.db == nil {
		return nil
	}
	return a.db
}

var _ Client = (*mariadbAdapter)(nil)

// mariadbBuilder forwards the engine-neutral QueryBuilder to the
// MariaDB builder.
type mariadbBuilder struct {
	qb mariadb.QueryBuilder
}

func (b *mariadbBuilder) Select(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Select(query, args...)
	return b
}

func (b *mariadbBuilder) Where(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Where(query, args...)
	return b
}

func (b *mariadbBuilder) Or(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Or(query, args...)
	return b
}

func (b *mariadbBuilder) Not(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Not(query, args...)
	return b
}

func (b *mariadbBuilder) Joins(query string, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Joins(query, args...)
	return b
}

func (b *mariadbBuilder) Preload(query string, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Preload(query, args...)
	return b
}

func (b *mariadbBuilder) Group(query string) QueryBuilder {
	b.qb = b.qb.Group(query)
	return b
}

func (b *mariadbBuilder) Having(query interface{}, args ...interface{}) QueryBuilder {
	b.qb = b.qb.Having(query, args...)
	return b
}

func (b *mariadbBuilder) Order(value interface{}) QueryBuilder {
	b.qb = b.qb.Order(value)
	return b
}

func (b *mariadbBuilder) Limit(limit int) QueryBuilder {
	b.qb = b.qb.Limit(limit)
	return b
}

func (b *mariadbBuilder) Offset(offset int) QueryBuilder {
	b.qb = b.qb.Offset(offset)
	return b
}

func (b *mariadbBuilder) Raw(sql string, values ...interface{}) QueryBuilder {
	b.qb = b.qb.Raw(sql, values...)
	return b
}

func (b *mariadbBuilder) Model(value interface{}) QueryBuilder {
	b.qb = b.qb.Model(value)
	return b
}

func (b *mariadbBuilder) Distinct(args ...interface{}) QueryBuilder {
	b.qb = b.qb.Distinct(args...)
	return b
}

func (b *mariadbBuilder) Table(name string) QueryBuilder {
	b.qb = b.qb.Table(name)
	return b
}

func (b *mariadbBuilder) Unscoped() QueryBuilder {
	b.qb = b.qb.Unscoped()
	return b
}

func (b *mariadbBuilder) ForUpdate() QueryBuilder {
	b.qb = b.qb.ForUpdate()
	return b
}

func (b *mariadbBuilder) ForUpdateSkipLocked() QueryBuilder {
	b.qb = b.qb.ForUpdateSkipLocked()
	return b
}

func (b *mariadbBuilder) OnConflict(onConflict interface{}) QueryBuilder {
	b.qb = b.qb.OnConflict(onConflict)
	return b
}

func (b *mariadbBuilder) Returning(columns ...string) QueryBuilder {
	b.qb = b.qb.Returning(columns...)
	return b
}

func (b *mariadbBuilder) Clauses(conds ...interface{}) QueryBuilder {
	b.qb = b.qb.Clauses(conds...)
	return b
}

func (b *mariadbBuilder) Scan(dest interface{}) error  { return b.qb.Scan(dest) }
func (b *mariadbBuilder) Find(dest interface{}) error  { return b.qb.Find(dest) }
func (b *mariadbBuilder) First(dest interface{}) error { return b.qb.First(dest) }
func (b *mariadbBuilder) Last(dest interface{}) error  { return b.qb.Last(dest) }
func (b *mariadbBuilder) Count(count *int64) error     { return b.qb.Count(count) }

func (b *mariadbBuilder) Updates(values interface{}) (int64, error) {
	return b.qb.Updates(values)
}

func (b *mariadbBuilder) Delete(value interface{}) (int64, error) {
	return b.qb.Delete(value)
}

func (b *mariadbBuilder) Pluck(column string, dest interface{}) (int64, error) {
	return b.qb.Pluck(column, dest)
}

func (b *mariadbBuilder) Create(value interface{}) (int64, error) {
	return b.qb.Create(value)
}

func (b *mariadbBuilder) CreateInBatches(value interface{}, batchSize int) (int64, error) {
	return b.qb.CreateInBatches(value, batchSize)
}

func (b *mariadbBuilder) FirstOrCreate(dest interface{}, conds ...interface{}) error {
	return b.qb.FirstOrCreate(dest, conds...)
}

func (b *mariadbBuilder) Done()                { b.qb.Done() }
func (b *mariadbBuilder) ToSubquery() *gorm.DB { return b.qb.ToSubquery() }

var _ QueryBuilder = (*mariadbBuilder)(nil)
