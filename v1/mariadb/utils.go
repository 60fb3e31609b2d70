package mariadb

import (
	"context"

	"gorm.io/gorm"
)

// DB grants raw GORM access for cases the Client interface does not cover,
// such as migrations. The returned handle is a snapshot; after a
// reconnection it keeps pointing at the old connection.
func (m *MariaDB) DB() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client
}

// session snapshots the current connection bound to ctx. Used by Query and
// Transaction, which must not hold the mutex while user code runs.
func (m *MariaDB) session(ctx context.Context) *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Client.WithContext(ctx)
}
