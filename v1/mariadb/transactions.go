package mariadb

import (
	"context"

	"gorm.io/gorm"
)

// cloneWithTx returns a shallow copy of MariaDB with tx as the DB Client.
// The clone shares the mutex and signal channels with the original, so
// transaction-scoped operations keep the same synchronization against the
// reconnection loop.
func (m *MariaDB) cloneWithTx(tx *gorm.DB) *MariaDB {
	return &MariaDB{
		Client:          tx,
		cfg:             m.cfg,
		mu:              m.mu,
		shutdownSignal:  m.shutdownSignal,
		retryChanSignal: m.retryChanSignal,
	}
}

// Transaction executes the given function within a database transaction.
// If the function returns an error, the transaction is rolled back;
// otherwise it is committed.
//
// The callback receives a Client bound to the transaction, so the same
// code works inside and outside transactions. The connection is
// snapshotted before the transaction starts; the mutex is not held while
// fn runs, so fn may freely call the client's locked entry points.
//
// Example usage:
//
//	err := db.Transaction(ctx, func(tx mariadb.Client) error {
//	    if err := tx.Create(ctx, user); err != nil {
//	        return err
//	    }
//	    return tx.Create(ctx, userProfile)
//	})
func (m *MariaDB) Transaction(ctx context.Context, fn func(tx Client) error) error {
	return m.session(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(m.cloneWithTx(tx))
	})
}
