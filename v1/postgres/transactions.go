package postgres

import (
	"context"

	"gorm.io/gorm"
)

// cloneWithTx returns a Postgres whose operations run on the given
// transaction handle instead of the shared pool. The clone shares the
// shutdown channels with its parent but must not outlive the transaction.
func (p *Postgres) cloneWithTx(tx *gorm.DB) *Postgres {
	clone := &Postgres{
		cfg:             p.cfg,
		shutdownSignal:  p.shutdownSignal,
		retryChanSignal: p.retryChanSignal,
	}
	clone.client.Store(tx)
	return clone
}

// Transaction executes fn within a database transaction. The callback
// receives a Client bound to the transaction, so the same repository code
// works inside and outside transactions. If fn returns an error the
// transaction is rolled back, otherwise it is committed.
//
// Nested calls open savepoints, which GORM manages transparently.
//
// Example:
//
//	err := db.Transaction(ctx, func(tx postgres.Client) error {
//	    if err := tx.Create(ctx, &user); err != nil {
//	        return err
//	    }
//	    return tx.Create(ctx, &profile)
//	})
func (p *Postgres) Transaction(ctx context.Context, fn func(tx Client) error) error {
	return p.session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(p.cloneWithTx(tx))
	})
}
