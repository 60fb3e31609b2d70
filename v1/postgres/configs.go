package postgres

import "time"

// Config carries everything needed to open and maintain a PostgreSQL
// connection pool.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// Connection holds the fields used to build the connection string.
// Port is a string because it is passed verbatim into the DSN.
type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string
	SSLMode  string
}

// ConnectionDetails tunes the connection pool. Zero values fall back to
// the package defaults (50 open, 25 idle, 1 minute lifetime).
type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
