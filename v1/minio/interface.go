package minio

import (
	"context"
	"io"
)

//go:generate mockgen -source=interface.go -destination=mock_logger.go -package=minio

// Client provides a high-level interface for interacting with MinIO/S3-compatible
// storage. It abstracts object storage operations behind bucket-scoped keys and
// adds buffer pooling, error translation, and connection monitoring.
//
// This interface is implemented by the concrete *MinioClient type.
type Client interface {
	// Object operations

	// Put uploads an object. Pass the size when it is known; without it the
	// upload streams with multipart buffering.
	Put(ctx context.Context, objectKey string, reader io.Reader, size ...int64) (int64, error)

	// Get retrieves an object and returns its contents.
	Get(ctx context.Context, objectKey string) ([]byte, error)

	// Delete removes an object.
	Delete(ctx context.Context, objectKey string) error

	// List returns the keys of all objects under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Presigned URL operations

	// PreSignedPut generates a presigned URL for uploading an object.
	PreSignedPut(ctx context.Context, objectKey string) (string, error)

	// PreSignedGet generates a presigned URL for downloading an object.
	PreSignedGet(ctx context.Context, objectKey string) (string, error)

	// Resource monitoring

	// GetBufferPoolStats returns buffer pool statistics.
	GetBufferPoolStats() BufferPoolStats

	// CleanupResources releases pooled buffers.
	CleanupResources()

	// Error handling

	// TranslateError converts MinIO-specific errors into standardized application errors.
	TranslateError(err error) error

	// GetErrorCategory returns the category of an error.
	GetErrorCategory(err error) ErrorCategory

	// IsRetryableError checks if an error can be retried.
	IsRetryableError(err error) bool

	// Lifecycle

	// GracefulShutdown safely terminates all MinIO client operations.
	GracefulShutdown()
}

// Logger is the logging surface the client needs for lifecycle events and
// connection monitoring. *logger.LoggerClient satisfies it.
type Logger interface {
	InfoWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	WarnWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	ErrorWithContext(ctx context.Context, msg string, err error, fields ...map[string]interface{})
}
