package mariadb

import "time"

// Config carries everything needed to open and maintain a MariaDB/MySQL
// connection pool.
type Config struct {
	Connection        Connection
	ConnectionDetails ConnectionDetails
}

// Connection holds the fields used to build the DSN.
// Port is a string because it is passed verbatim into the DSN.
type Connection struct {
	Host     string
	Port     string
	User     string
	Password string
	DbName   string

	// Charset selects the connection character set. Defaults to "utf8mb4".
	Charset string

	// ParseTime makes the driver scan DATE and DATETIME columns into
	// time.Time instead of []byte. GORM requires this for time fields.
	ParseTime bool

	// Loc is the location used when parsing times. Defaults to "Local".
	Loc string

	// TLS selects a TLS configuration by name ("true", "skip-verify", or a
	// profile registered with mysql.RegisterTLSConfig). Empty disables TLS.
	TLS string

	// Timeout, ReadTimeout and WriteTimeout are duration strings such as
	// "30s". Empty values are omitted from the DSN.
	Timeout      string
	ReadTimeout  string
	WriteTimeout string
}

// ConnectionDetails tunes the connection pool. Zero values fall back to
// the package defaults (50 open, 25 idle, 1 minute lifetime).
type ConnectionDetails struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}
