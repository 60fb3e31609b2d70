package postgres

import (
	"context"

	"gorm.io/gorm"
)

// DB returns the current underlying GORM instance for advanced use cases
// not covered by the Client interface. The returned handle is a snapshot:
// after a reconnection it keeps pointing at the old pool, so do not cache
// it across long-lived operations.
func (p *Postgres) DB() *gorm.DB {
	return p.client.Load()
}

// session snapshots the current connection and binds it to the context.
// All CRUD operations go through here.
func (p *Postgres) session(ctx context.Context) *gorm.DB {
	return p.client.Load().WithContext(ctx)
}
