package minio

import (
	"context"
	"errors"

	"github.com/minio/minio-go/v7"
)

// Common MinIO errors
var (
	// ErrConnectionFailed is returned when no usable connection is available.
	ErrConnectionFailed = errors.New("minio: connection failed")

	// ErrObjectNotFound is returned when the requested object does not exist.
	ErrObjectNotFound = errors.New("minio: object not found")

	// ErrBucketNotFound is returned when the configured bucket does not exist.
	ErrBucketNotFound = errors.New("minio: bucket not found")

	// ErrAccessDenied is returned when credentials are rejected or lack
	// permission for the operation.
	ErrAccessDenied = errors.New("minio: access denied")

	// ErrInvalidObjectKey is returned when an operation is called with an
	// empty object key.
	ErrInvalidObjectKey = errors.New("minio: invalid object key")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("minio: operation timed out")
)

// ErrorCategory classifies translated errors for retry decisions.
type ErrorCategory string

const (
	// ErrorCategoryTransient marks errors worth retrying (throttling,
	// server-side hiccups, timeouts).
	ErrorCategoryTransient ErrorCategory = "transient"

	// ErrorCategoryNotFound marks missing objects or buckets.
	ErrorCategoryNotFound ErrorCategory = "not_found"

	// ErrorCategoryAuth marks credential and permission failures.
	ErrorCategoryAuth ErrorCategory = "auth"

	// ErrorCategoryPermanent marks errors that will not resolve on retry.
	ErrorCategoryPermanent ErrorCategory = "permanent"
)

// TranslateError converts MinIO-specific errors into the package's
// standardized errors. The original error stays reachable via errors.Is/As.
func (m *MinioClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(ErrTimeout, err)
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return errors.Join(ErrObjectNotFound, err)
	case "NoSuchBucket":
		return errors.Join(ErrBucketNotFound, err)
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return errors.Join(ErrAccessDenied, err)
	case "RequestTimeout":
		return errors.Join(ErrTimeout, err)
	}

	return err
}

// GetErrorCategory returns the category of a (translated) error.
func (m *MinioClient) GetErrorCategory(err error) ErrorCategory {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrObjectNotFound), errors.Is(err, ErrBucketNotFound):
		return ErrorCategoryNotFound
	case errors.Is(err, ErrAccessDenied):
		return ErrorCategoryAuth
	case errors.Is(err, ErrTimeout), errors.Is(err, ErrConnectionFailed):
		return ErrorCategoryTransient
	default:
		return ErrorCategoryPermanent
	}
}

// IsRetryableError checks if an error can be retried.
func (m *MinioClient) IsRetryableError(err error) bool {
	return m.GetErrorCategory(err) == ErrorCategoryTransient
}

// IsObjectNotFoundError checks if the error is a missing-object error.
func IsObjectNotFoundError(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// IsAccessDeniedError checks if the error is a credentials or permission error.
func IsAccessDeniedError(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsConnectionFailedError checks if the error is a connection failure.
func IsConnectionFailedError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}
