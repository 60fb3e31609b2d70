package rabbit

import (
	"errors"
	"net"
	"strings"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Standardized errors returned by TranslateError. They abstract over
// AMQP reply codes and transport failures so callers can branch with
// errors.Is instead of inspecting amqp.Error codes.
var (
	// ErrConnectionFailed is returned when a connection cannot be established.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrConnectionLost is returned when an established connection dropped.
	ErrConnectionLost = errors.New("connection lost")

	// ErrConnectionClosed is returned when the server closed the connection.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrChannelClosed is returned when an operation hits a closed channel.
	ErrChannelClosed = errors.New("channel closed")

	// ErrAuthenticationFailed is returned when the credentials are rejected.
	ErrAuthenticationFailed = errors.New("authentication failed")

	// ErrAccessDenied is returned when access to a vhost or resource is refused.
	ErrAccessDenied = errors.New("access denied")

	// ErrExchangeNotFound is returned when the exchange does not exist.
	ErrExchangeNotFound = errors.New("exchange not found")

	// ErrQueueNotFound is returned when the queue does not exist.
	ErrQueueNotFound = errors.New("queue not found")

	// ErrResourceLocked is returned when a queue is locked by another
	// connection, e.g. an exclusive consumer.
	ErrResourceLocked = errors.New("resource locked")

	// ErrPreconditionFailed is returned when a declare does not match the
	// existing entity, e.g. redeclaring a queue with different arguments.
	ErrPreconditionFailed = errors.New("precondition failed")

	// ErrResourceExhausted is returned when the server lacks resources to
	// complete the operation (memory or disk alarms, too many channels).
	ErrResourceExhausted = errors.New("resource exhausted")

	// ErrMessageTooLarge is returned when the payload exceeds the server's
	// frame limits.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrPublishFailed is returned when a mandatory or immediate publish
	// cannot be routed or delivered.
	ErrPublishFailed = errors.New("publish failed")

	// ErrProtocolError is returned for AMQP framing and syntax violations.
	ErrProtocolError = errors.New("protocol error")

	// ErrInternalError is returned for server-side internal failures.
	ErrInternalError = errors.New("internal error")

	// ErrNotAllowed is returned when the operation violates a server policy.
	ErrNotAllowed = errors.New("not allowed")

	// ErrNotImplemented is returned when the server does not support the
	// requested method or argument.
	ErrNotImplemented = errors.New("not implemented")

	// ErrTimeout is returned when an operation or dial times out.
	ErrTimeout = errors.New("timeout")

	// ErrNetworkError is returned for transport failures that are not more
	// specifically classified.
	ErrNetworkError = errors.New("network error")
)

// TranslateError converts AMQP and transport errors into the
// standardized errors above. Errors that match no known shape are
// returned unchanged, so callers never lose information.
func (rb *RabbitClient) TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		return translateAMQPError(amqpErr)
	}

	// Errno before net.Error: a *net.OpError satisfies net.Error but
	// wraps the errno that carries the actual cause.
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return translateErrno(errno, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return ErrTimeout
		}
		return ErrNetworkError
	}

	return err
}

// translateAMQPError maps AMQP reply codes to standardized errors.
// Codes 404 and 403 are disambiguated on the server's reason text: a
// NOT_FOUND names the missing entity and an ACCESS_REFUSED during
// login means bad credentials rather than missing permissions.
func translateAMQPError(amqpErr *amqp.Error) error {
	reason := strings.ToLower(amqpErr.Reason)

	switch amqpErr.Code {
	case amqp.ConnectionForced:
		return ErrConnectionClosed
	case amqp.ChannelError:
		return ErrChannelClosed
	case amqp.AccessRefused:
		if strings.Contains(reason, "login") || strings.Contains(reason, "password") {
			return ErrAuthenticationFailed
		}
		return ErrAccessDenied
	case amqp.NotFound:
		if strings.Contains(reason, "exchange") {
			return ErrExchangeNotFound
		}
		return ErrQueueNotFound
	case amqp.ResourceLocked:
		return ErrResourceLocked
	case amqp.PreconditionFailed:
		return ErrPreconditionFailed
	case amqp.ContentTooLarge:
		return ErrMessageTooLarge
	case amqp.NoRoute, amqp.NoConsumers:
		return ErrPublishFailed
	case amqp.ResourceError:
		return ErrResourceExhausted
	case amqp.NotAllowed:
		return ErrNotAllowed
	case amqp.NotImplemented:
		return ErrNotImplemented
	case amqp.InternalError:
		return ErrInternalError
	case amqp.FrameError, amqp.SyntaxError, amqp.CommandInvalid, amqp.UnexpectedFrame:
		return ErrProtocolError
	default:
		return amqpErr
	}
}

// translateErrno maps the socket-level errnos that surface when the
// broker is unreachable or a connection breaks mid-operation. Unknown
// errnos pass through unchanged.
func translateErrno(errno syscall.Errno, original error) error {
	switch errno {
	case syscall.ECONNREFUSED:
		return ErrConnectionFailed
	case syscall.ECONNRESET, syscall.ECONNABORTED, syscall.EPIPE, syscall.ENOTCONN:
		return ErrConnectionLost
	case syscall.ETIMEDOUT:
		return ErrTimeout
	case syscall.EHOSTUNREACH, syscall.ENETUNREACH:
		return ErrNetworkError
	default:
		return original
	}
}

// ErrorCategory groups standardized errors by the kind of failure.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryConnection
	CategoryChannel
	CategoryAuthentication
	CategoryResource
	CategoryMessage
	CategoryProtocol
	CategoryNetwork
	CategoryServer
	CategoryTimeout
)

// GetErrorCategory classifies an error, translating it first so both
// raw AMQP errors and already-translated sentinels categorize the same
// way.
func (rb *RabbitClient) GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	translated := rb.TranslateError(err)

	switch {
	case errors.Is(translated, ErrConnectionFailed),
		errors.Is(translated, ErrConnectionLost),
		errors.Is(translated, ErrConnectionClosed):
		return CategoryConnection
	case errors.Is(translated, ErrChannelClosed):
		return CategoryChannel
	case errors.Is(translated, ErrAuthenticationFailed),
		errors.Is(translated, ErrAccessDenied):
		return CategoryAuthentication
	case errors.Is(translated, ErrExchangeNotFound),
		errors.Is(translated, ErrQueueNotFound),
		errors.Is(translated, ErrResourceLocked),
		errors.Is(translated, ErrPreconditionFailed),
		errors.Is(translated, ErrResourceExhausted):
		return CategoryResource
	case errors.Is(translated, ErrMessageTooLarge),
		errors.Is(translated, ErrPublishFailed):
		return CategoryMessage
	case errors.Is(translated, ErrProtocolError):
		return CategoryProtocol
	case errors.Is(translated, ErrNetworkError):
		return CategoryNetwork
	case errors.Is(translated, ErrInternalError),
		errors.Is(translated, ErrNotAllowed),
		errors.Is(translated, ErrNotImplemented):
		return CategoryServer
	case errors.Is(translated, ErrTimeout):
		return CategoryTimeout
	default:
		return CategoryUnknown
	}
}

// IsRetryableError reports whether the operation can be retried, on
// this or a fresh connection. Connection, channel, network and server
// failures qualify; topology and permission errors do not.
func (rb *RabbitClient) IsRetryableError(err error) bool {
	translated := rb.TranslateError(err)
	switch {
	case errors.Is(translated, ErrConnectionFailed),
		errors.Is(translated, ErrConnectionLost),
		errors.Is(translated, ErrConnectionClosed),
		errors.Is(translated, ErrChannelClosed),
		errors.Is(translated, ErrTimeout),
		errors.Is(translated, ErrNetworkError),
		errors.Is(translated, ErrInternalError),
		errors.Is(translated, ErrResourceExhausted):
		return true
	default:
		return false
	}
}

// IsPermanentError reports whether retrying is pointless without a
// config or topology change.
func (rb *RabbitClient) IsPermanentError(err error) bool {
	translated := rb.TranslateError(err)
	switch {
	case errors.Is(translated, ErrAuthenticationFailed),
		errors.Is(translated, ErrAccessDenied),
		errors.Is(translated, ErrExchangeNotFound),
		errors.Is(translated, ErrQueueNotFound),
		errors.Is(translated, ErrPreconditionFailed),
		errors.Is(translated, ErrMessageTooLarge),
		errors.Is(translated, ErrNotAllowed),
		errors.Is(translated, ErrNotImplemented),
		errors.Is(translated, ErrProtocolError):
		return true
	default:
		return false
	}
}

// IsConnectionError reports whether the error concerns the connection
// itself, meaning the reconnection loop will repair it.
func (rb *RabbitClient) IsConnectionError(err error) bool {
	translated := rb.TranslateError(err)
	switch {
	case errors.Is(translated, ErrConnectionFailed),
		errors.Is(translated, ErrConnectionLost),
		errors.Is(translated, ErrConnectionClosed):
		return true
	default:
		return false
	}
}
