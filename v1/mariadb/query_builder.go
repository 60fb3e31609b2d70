package mariadb

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Query starts a fluent query chain bound to the given context.
// The chain snapshots the current connection under the read lock and
// releases it immediately, so long chains never block the reconnection
// loop and subqueries can be built while an outer chain is open.
//
// Example:
//
//	var users []User
//	err := db.Query(ctx).
//	    Where("age > ?", 18).
//	    Order("created_at DESC").
//	    Limit(10).
//	    Find(&users)
func (m *MariaDB) Query(ctx context.Context) QueryBuilder {
	return &mariadbQueryBuilder{db: m.session(ctx)}
}

// mariadbQueryBuilder is the QueryBuilder implementation backed by GORM.
// Each modifier replaces the internal *gorm.DB with the extended statement;
// terminal methods execute it.
type mariadbQueryBuilder struct {
	db *gorm.DB
}

// Select specifies the fields to retrieve, e.g. qb.Select("id, name").
func (qb *mariadbQueryBuilder) Select(query interface{}, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Select(query, args...)
	return qb
}

// Where adds a condition. Multiple calls are combined with AND.
func (qb *mariadbQueryBuilder) Where(query interface{}, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Where(query, args...)
	return qb
}

// Or combines the condition with the previous ones using OR.
func (qb *mariadbQueryBuilder) Or(query interface{}, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Or(query, args...)
	return qb
}

// Not negates the condition.
func (qb *mariadbQueryBuilder) Not(query interface{}, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Not(query, args...)
	return qb
}

// Joins adds a JOIN clause, e.g. qb.Joins("JOIN orders ON orders.user_id = users.id").
func (qb *mariadbQueryBuilder) Joins(query string, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Joins(query, args...)
	return qb
}

// Preload eagerly loads an association to avoid N+1 queries.
func (qb *mariadbQueryBuilder) Preload(query string, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Preload(query, args...)
	return qb
}

// Group adds a GROUP BY clause.
func (qb *mariadbQueryBuilder) Group(query string) QueryBuilder {
	qb.db = qb.db.Group(query)
	return qb
}

// Having filters groups created by Group.
func (qb *mariadbQueryBuilder) Having(query interface{}, args ...interface{}) QueryBuilder {
	qb.db = qb.db.Having(query, args...)
	return qb
}

// Order adds an ORDER BY clause, e.g. qb.Order("created_at DESC").
func (qb *mariadbQueryBuilder) Order(value interface{}) QueryBuilder {
	qb.db = qb.db.Order(value)
	return qb
}

// Limit caps the number of records returned.
func (qb *mariadbQueryBuilder) Limit(limit int) QueryBuilder {
	qb.db = qb.db.Limit(limit)
	return qb
}

// Offset skips the given number of records. Typically paired with Limit
// for pagination.
func (qb *mariadbQueryBuilder) Offset(offset int) QueryBuilder {
	qb.db = qb.db.Offset(offset)
	return qb
}

// Raw replaces the statement with raw SQL.
func (qb *mariadbQueryBuilder) Raw(sql string, values ...interface{}) QueryBuilder {
	qb.db = qb.db.Raw(sql, values...)
	return qb
}

// Model sets the model the query operates on. Required for Count and
// Updates when the destination cannot be inferred.
func (qb *mariadbQueryBuilder) Model(value interface{}) QueryBuilder {
	qb.db = qb.db.Model(value)
	return qb
}

// Distinct eliminates duplicate rows, optionally on specific columns.
func (qb *mariadbQueryBuilder) Distinct(args ...interface{}) QueryBuilder {
	qb.db = qb.db.Distinct(args...)
	return qb
}

// Table overrides the table name derived from the model.
func (qb *mariadbQueryBuilder) Table(name string) QueryBuilder {
	qb.db = qb.db.Table(name)
	return qb
}

// Unscoped disables default scopes, most commonly to include soft-deleted
// records or to delete permanently.
func (qb *mariadbQueryBuilder) Unscoped() QueryBuilder {
	qb.db = qb.db.Unscoped()
	return qb
}

// ForUpdate locks the selected rows exclusively until the transaction ends.
// Requires InnoDB and an explicit transaction.
func (qb *mariadbQueryBuilder) ForUpdate() QueryBuilder {
	qb.db = qb.db.Clauses(clause.Locking{Strength: "UPDATE"})
	return qb
}

// ForUpdateSkipLocked locks the selected rows but skips rows already locked
// by other transactions. Requires MariaDB 10.6 or MySQL 8.0.
func (qb *mariadbQueryBuilder) ForUpdateSkipLocked() QueryBuilder {
	qb.db = qb.db.Clauses(clause.Locking{
		Strength: "UPDATE",
		Options:  "SKIP LOCKED",
	})
	return qb
}

// OnConflict adds an upsert clause, rendered as ON DUPLICATE KEY UPDATE on
// this dialect. The Columns list is ignored; MySQL applies the update on
// any unique key violation. The argument must be a clause.OnConflict;
// anything else fails at execution time.
//
// Example:
//
//	_, err := db.Query(ctx).OnConflict(clause.OnConflict{
//	    DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
//	}).Create(&user)
func (qb *mariadbQueryBuilder) OnConflict(onConflict interface{}) QueryBuilder {
	expr, ok := onConflict.(clause.OnConflict)
	if !ok {
		_ = qb.db.AddError(fmt.Errorf("OnConflict expects clause.OnConflict, got %T", onConflict))
		return qb
	}
	qb.db = qb.db.Clauses(expr)
	return qb
}

// Returning adds a RETURNING clause. MariaDB honours it for INSERT and
// DELETE from 10.5 on; MySQL and UPDATE statements reject it. Pass "*"
// for all columns.
func (qb *mariadbQueryBuilder) Returning(columns ...string) QueryBuilder {
	var clauseColumns []clause.Column
	for _, col := range columns {
		if col == "*" {
			clauseColumns = []clause.Column{{Name: "*"}}
			break
		}
		clauseColumns = append(clauseColumns, clause.Column{Name: col})
	}
	qb.db = qb.db.Clauses(clause.Returning{Columns: clauseColumns})
	return qb
}

// Clauses adds arbitrary GORM clause expressions. Each argument must
// implement clause.Expression; anything else fails at execution time.
func (qb *mariadbQueryBuilder) Clauses(conds ...interface{}) QueryBuilder {
	exprs := make([]clause.Expression, 0, len(conds))
	for _, cond := range conds {
		expr, ok := cond.(clause.Expression)
		if !ok {
			_ = qb.db.AddError(fmt.Errorf("Clauses expects clause.Expression, got %T", cond))
			return qb
		}
		exprs = append(exprs, expr)
	}
	qb.db = qb.db.Clauses(exprs...)
	return qb
}

// Scan executes the query and scans the result into dest. Use it with Raw
// or Select when the destination is not a model.
func (qb *mariadbQueryBuilder) Scan(dest interface{}) error {
	return qb.db.Scan(dest).Error
}

// Find executes the query and stores all matching records in dest.
func (qb *mariadbQueryBuilder) Find(dest interface{}) error {
	return qb.db.Find(dest).Error
}

// First executes the query and stores the first matching record in dest.
func (qb *mariadbQueryBuilder) First(dest interface{}) error {
	return qb.db.First(dest).Error
}

// Last executes the query and stores the last matching record in dest.
func (qb *mariadbQueryBuilder) Last(dest interface{}) error {
	return qb.db.Last(dest).Error
}

// Count executes the query and stores the number of matching records.
func (qb *mariadbQueryBuilder) Count(count *int64) error {
	return qb.db.Count(count).Error
}

// Updates applies the values to all matching records.
// Returns the number of rows affected.
func (qb *mariadbQueryBuilder) Updates(values interface{}) (int64, error) {
	result := qb.db.Updates(values)
	return result.RowsAffected, result.Error
}

// Delete deletes all matching records. Returns the number of rows affected.
func (qb *mariadbQueryBuilder) Delete(value interface{}) (int64, error) {
	result := qb.db.Delete(value)
	return result.RowsAffected, result.Error
}

// Pluck queries a single column into a slice.
func (qb *mariadbQueryBuilder) Pluck(column string, dest interface{}) (int64, error) {
	result := qb.db.Pluck(column, dest)
	return result.RowsAffected, result.Error
}

// Create inserts the value, honoring any OnConflict clause added earlier
// in the chain. Returns the number of rows affected. Note that MySQL
// counts an ON DUPLICATE KEY UPDATE that changes a row as 2 affected rows.
func (qb *mariadbQueryBuilder) Create(value interface{}) (int64, error) {
	result := qb.db.Create(value)
	return result.RowsAffected, result.Error
}

// CreateInBatches inserts a large slice in batches of batchSize.
// Returns the number of rows affected.
func (qb *mariadbQueryBuilder) CreateInBatches(value interface{}, batchSize int) (int64, error) {
	result := qb.db.CreateInBatches(value, batchSize)
	return result.RowsAffected, result.Error
}

// FirstOrCreate finds the first record matching the conditions or creates
// one if none matches.
func (qb *mariadbQueryBuilder) FirstOrCreate(dest interface{}, conds ...interface{}) error {
	return qb.db.FirstOrCreate(dest, conds...).Error
}

// Done finalizes the chain without executing a terminal operation.
// With the snapshot connection handling it is a no-op.
func (qb *mariadbQueryBuilder) Done() {}

// ToSubquery hands back the assembled statement for use as a GORM subquery.
func (qb *mariadbQueryBuilder) ToSubquery() *gorm.DB {
	return qb.db
}
