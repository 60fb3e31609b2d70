package redis

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/redis/go-redis/v9"
)

// Common Redis errors
var (
	// ErrKeyNotFound is returned when a key does not exist. A cache
	// miss satisfies this sentinel.
	ErrKeyNotFound = errors.New("redis: key not found")

	// ErrClientClosed is returned when the client has been closed.
	ErrClientClosed = errors.New("redis: client is closed")

	// ErrPoolTimeout is returned when all pooled connections are busy
	// and the pool timeout was reached.
	ErrPoolTimeout = errors.New("redis: connection pool timeout")

	// ErrTimeout is returned when an operation exceeds its deadline.
	ErrTimeout = errors.New("redis: operation timed out")

	// ErrConnectionFailed is returned when the server is unreachable.
	ErrConnectionFailed = errors.New("redis: connection failed")

	// ErrAuthFailed is returned when credentials are rejected or lack
	// permission for the command.
	ErrAuthFailed = errors.New("redis: authentication failed")
)

// ErrorCategory classifies translated errors for retry decisions.
type ErrorCategory string

const (
	// ErrorCategoryTransient marks errors worth retrying (timeouts,
	// pool exhaustion, unreachable server).
	ErrorCategoryTransient ErrorCategory = "transient"

	// ErrorCategoryNotFound marks missing keys, i.e. cache misses.
	ErrorCategoryNotFound ErrorCategory = "not_found"

	// ErrorCategoryAuth marks credential and permission failures.
	ErrorCategoryAuth ErrorCategory = "auth"

	// ErrorCategoryPermanent marks errors that will not resolve on
	// retry.
	ErrorCategoryPermanent ErrorCategory = "permanent"
)

// TranslateError converts driver errors into the package's
// standardized errors. The original error stays reachable via
// errors.Is/As. Sentinel checks run before the reply-prefix checks:
// a server reply carries its own error type, and the driver's own
// sentinels must win over string inspection.
func (r *RedisClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, redis.Nil):
		return errors.Join(ErrKeyNotFound, err)
	case errors.Is(err, redis.ErrClosed):
		return errors.Join(ErrClientClosed, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errors.Join(ErrTimeout, err)
	}

	// The driver keeps its pool-timeout error internal to its pool
	// package, so it is matched by message once the exported sentinels
	// are ruled out.
	if strings.Contains(err.Error(), "connection pool timeout") {
		return errors.Join(ErrPoolTimeout, err)
	}

	// Server replies: NOAUTH/WRONGPASS for bad credentials, NOPERM for
	// ACL rejections.
	if redis.HasErrorPrefix(err, "NOAUTH") ||
		redis.HasErrorPrefix(err, "WRONGPASS") ||
		redis.HasErrorPrefix(err, "NOPERM") {
		return errors.Join(ErrAuthFailed, err)
	}

	var nerr net.Error
	if errors.As(err, &nerr) {
		if nerr.Timeout() {
			return errors.Join(ErrTimeout, err)
		}
		return errors.Join(ErrConnectionFailed, err)
	}

	return err
}

// GetErrorCategory returns the category of a (translated) error.
func (r *RedisClient) GetErrorCategory(err error) ErrorCategory {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrKeyNotFound):
		return ErrorCategoryNotFound
	case errors.Is(err, ErrAuthFailed):
		return ErrorCategoryAuth
	case errors.Is(err, ErrTimeout),
		errors.Is(err, ErrPoolTimeout),
		errors.Is(err, ErrConnectionFailed):
		return ErrorCategoryTransient
	default:
		return ErrorCategoryPermanent
	}
}

// IsRetryableError checks if an error can be retried.
func (r *RedisClient) IsRetryableError(err error) bool {
	return r.GetErrorCategory(err) == ErrorCategoryTransient
}

// IsKeyNotFoundError checks if the error is a missing key, i.e. a
// cache miss.
func IsKeyNotFoundError(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsAuthError checks if the error is a credentials or permission error.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuthFailed)
}

// IsConnectionFailedError checks if the error is a connection failure.
func IsConnectionFailedError(err error) bool {
	return errors.Is(err, ErrConnectionFailed)
}
