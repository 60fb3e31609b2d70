package schema_registry

import (
	"fmt"
	"time"
)

// Config holds configuration for the schema registry client.
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081")
	URL string

	// Username for basic auth (optional)
	Username string

	// Password for basic auth (optional)
	Password string

	// Timeout for HTTP requests. Zero means ten seconds.
	Timeout time.Duration
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("schema registry URL is required")
	}
	return nil
}
