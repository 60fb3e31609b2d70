package mariadb

import (
	"context"
)

// Find finds records that match the given conditions.
func (m *MariaDB) Find(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).Find(dest, conditions...).Error
}

// First finds the first record that matches the given conditions,
// ordered by primary key. Returns gorm.ErrRecordNotFound when nothing matches.
func (m *MariaDB) First(ctx context.Context, dest interface{}, conditions ...interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).First(dest, conditions...).Error
}

// Create inserts a new record.
func (m *MariaDB) Create(ctx context.Context, value interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).Create(value).Error
}

// Save updates all fields of a record, inserting it if it has no primary key.
func (m *MariaDB) Save(ctx context.Context, value interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx).Save(value).Error
}

// Update applies attrs to the records selected by model. attrs may be a map,
// a struct, or name/value pairs. Returns the number of rows affected.
func (m *MariaDB) Update(ctx context.Context, model interface{}, attrs interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Model(model).Updates(attrs)
	return result.RowsAffected, result.Error
}

// UpdateColumn updates a single column on the records selected by model.
// Returns the number of rows affected.
func (m *MariaDB) UpdateColumn(ctx context.Context, model interface{}, columnName string, value interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Model(model).Update(columnName, value)
	return result.RowsAffected, result.Error
}

// UpdateColumns updates multiple columns on the records selected by model.
// Returns the number of rows affected.
func (m *MariaDB) UpdateColumns(ctx context.Context, model interface{}, columnValues map[string]interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Model(model).Updates(columnValues)
	return result.RowsAffected, result.Error
}

// UpdateWhere applies attrs to all records of model matching the condition.
// Returns the number of rows affected.
func (m *MariaDB) UpdateWhere(ctx context.Context, model interface{}, attrs interface{}, condition string, args ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Model(model).Where(condition, args...).Updates(attrs)
	return result.RowsAffected, result.Error
}

// Delete deletes records that match the given conditions.
// Returns the number of rows affected.
func (m *MariaDB) Delete(ctx context.Context, value interface{}, conditions ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Delete(value, conditions...)
	return result.RowsAffected, result.Error
}

// Count counts records of model that match the given conditions.
func (m *MariaDB) Count(ctx context.Context, model interface{}, count *int64, conditions ...interface{}) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tx := m.Client.WithContext(ctx).Model(model)
	if len(conditions) > 0 {
		tx = tx.Where(conditions[0], conditions[1:]...)
	}
	return tx.Count(count).Error
}

// Exec executes raw SQL. Returns the number of rows affected.
func (m *MariaDB) Exec(ctx context.Context, sql string, values ...interface{}) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := m.Client.WithContext(ctx).Exec(sql, values...)
	return result.RowsAffected, result.Error
}
