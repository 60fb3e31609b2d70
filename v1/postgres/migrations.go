package postgres

import "fmt"

// Migrate creates or updates the tables for the given models using GORM's
// AutoMigrate. Intended for service startup and tests; production schema
// changes usually go through dedicated migration tooling.
//
// Example:
//
//	if err := db.Migrate(&ResultPage{}, &User{}); err != nil {
//	    return err
//	}
func (p *Postgres) Migrate(models ...interface{}) error {
	if err := p.DB().AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	return nil
}
