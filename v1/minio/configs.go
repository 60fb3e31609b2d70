package minio

import "time"

// Connection holds the settings needed to reach a MinIO or S3-compatible
// endpoint.
type Connection struct {
	// Endpoint is the storage server address (host:port, no scheme).
	Endpoint string

	// AccessKeyID and SecretAccessKey are the static credentials used for
	// signature v4 authentication.
	AccessKeyID     string
	SecretAccessKey string

	// UseSSL toggles TLS for the connection.
	// Default: false
	UseSSL bool

	// Region is the bucket region. Leave empty for the server default.
	Region string

	// BucketName is the bucket all operations run against.
	BucketName string

	// AccessBucketCreation allows the client to create the bucket when it
	// does not exist. When false a missing bucket is an error.
	// Default: false
	AccessBucketCreation bool
}

// Config defines the configuration for the MinIO client.
type Config struct {
	Connection Connection

	// KeyPrefix is prepended to every object key, separating this
	// application's objects from other users of the bucket.
	// Leave empty to use keys verbatim.
	KeyPrefix string

	// PresignExpiry is how long presigned URLs stay valid.
	// Default: 15 minutes
	PresignExpiry time.Duration
}

// DefaultConfig returns a Config with sensible defaults for local development.
func DefaultConfig() Config {
	return Config{
		Connection: Connection{
			Endpoint: "localhost:9000",
		},
		PresignExpiry: 15 * time.Minute,
	}
}

// presignExpiry resolves the configured expiry, falling back to the default.
func (c Config) presignExpiry() time.Duration {
	if c.PresignExpiry > 0 {
		return c.PresignExpiry
	}
	return 15 * time.Minute
}
