package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Standardized database errors exposed by this package. CRUD and query
// methods return raw GORM/driver errors; run them through TranslateError
// to compare against these sentinels with errors.Is.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet validation rules
	ErrInvalidData = errors.New("invalid data")

	// ErrSerializationFailure is returned when a transaction could not be
	// serialized with respect to concurrent transactions (SQLSTATE 40001)
	ErrSerializationFailure = errors.New("serialization failure")

	// ErrDeadlockDetected is returned when the database aborted a transaction
	// to break a deadlock (SQLSTATE 40P01)
	ErrDeadlockDetected = errors.New("deadlock detected")

	// ErrConnectionFailed is returned when the server connection was lost or
	// refused (SQLSTATE class 08, or an operator-initiated shutdown)
	ErrConnectionFailed = errors.New("database connection failed")
)

// ErrorCategory classifies translated errors for retry and alerting decisions.
type ErrorCategory string

const (
	// ErrorCategoryNone means no error occurred.
	ErrorCategoryNone ErrorCategory = "none"

	// ErrorCategoryNotFound covers missing records.
	ErrorCategoryNotFound ErrorCategory = "not_found"

	// ErrorCategoryConstraint covers unique, foreign key, and validation
	// violations. Retrying without changing the data will fail again.
	ErrorCategoryConstraint ErrorCategory = "constraint"

	// ErrorCategoryTransient covers serialization failures, deadlocks, and
	// resource exhaustion. The same operation may succeed when retried.
	ErrorCategoryTransient ErrorCategory = "transient"

	// ErrorCategoryConnection covers lost or refused connections. The
	// operation may succeed after the connection is re-established.
	ErrorCategoryConnection ErrorCategory = "connection"

	// ErrorCategoryCritical covers internal database errors (data corruption,
	// system failures) that require operator attention.
	ErrorCategoryCritical ErrorCategory = "critical"

	// ErrorCategoryUnknown covers everything this package cannot classify.
	ErrorCategoryUnknown ErrorCategory = "unknown"
)

// TranslateError converts GORM and PostgreSQL driver errors into the
// standardized sentinels above. GORM already maps the common constraint
// violations when TranslateError is enabled on the dialector; the SQLSTATE
// switch below catches what GORM passes through untranslated. Errors that
// match nothing are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return ErrDuplicateKey
		case "23503":
			return ErrForeignKey
		case "23502", "23514", "22P02":
			return ErrInvalidData
		case "40001":
			return ErrSerializationFailure
		case "40P01":
			return ErrDeadlockDetected
		case "57P01", "57P02", "57P03":
			return ErrConnectionFailed
		}
		if sqlStateClass(pgErr.Code) == "08" {
			return ErrConnectionFailed
		}
	}

	return err
}

// GetErrorCategory classifies an error for retry and alerting decisions.
// The error does not need to be translated first.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return ErrorCategoryNone
	}

	switch translated := TranslateError(err); {
	case errors.Is(translated, ErrRecordNotFound):
		return ErrorCategoryNotFound
	case errors.Is(translated, ErrDuplicateKey),
		errors.Is(translated, ErrForeignKey),
		errors.Is(translated, ErrInvalidData):
		return ErrorCategoryConstraint
	case errors.Is(translated, ErrSerializationFailure),
		errors.Is(translated, ErrDeadlockDetected):
		return ErrorCategoryTransient
	case errors.Is(translated, ErrConnectionFailed):
		return ErrorCategoryConnection
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTransient
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch sqlStateClass(pgErr.Code) {
		case "53":
			// Insufficient resources (too many connections, out of memory).
			return ErrorCategoryTransient
		case "58", "XX":
			// System errors and internal errors.
			return ErrorCategoryCritical
		}
	}

	return ErrorCategoryUnknown
}

// IsRetryableError reports whether the operation can be retried immediately,
// typically by re-running the enclosing transaction.
func IsRetryableError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryTransient
}

// IsTemporaryError reports whether the error is expected to clear on its
// own, either by retrying or by waiting for the connection to recover.
func IsTemporaryError(err error) bool {
	category := GetErrorCategory(err)
	return category == ErrorCategoryTransient || category == ErrorCategoryConnection
}

// IsCriticalError reports whether the error indicates an internal database
// failure that requires operator attention.
func IsCriticalError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryCritical
}

// TranslateError implements Client.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}

// GetErrorCategory implements Client.
func (p *Postgres) GetErrorCategory(err error) ErrorCategory {
	return GetErrorCategory(err)
}

// IsRetryable implements Client.
func (p *Postgres) IsRetryable(err error) bool {
	return IsRetryableError(err)
}

// IsTemporary implements Client.
func (p *Postgres) IsTemporary(err error) bool {
	return IsTemporaryError(err)
}

// IsCritical implements Client.
func (p *Postgres) IsCritical(err error) bool {
	return IsCriticalError(err)
}

// sqlStateClass returns the two-character SQLSTATE class of a PostgreSQL
// error code, or "" when the code is malformed.
func sqlStateClass(code string) string {
	if len(code) < 2 {
		return ""
	}
	return code[:2]
}
