package mariadb

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Standardized database errors exposed by this package. CRUD and query
// methods return raw GORM/driver errors; run them through TranslateError
// to compare against these sentinels with errors.Is.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique
	// constraint (MySQL error 1062)
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key
	// constraint (MySQL errors 1451, 1452)
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when the data being saved doesn't meet
	// validation rules (NOT NULL, CHECK, or column length violations)
	ErrInvalidData = errors.New("invalid data")

	// ErrDeadlockDetected is returned when InnoDB aborted a transaction to
	// break a deadlock (MySQL error 1213)
	ErrDeadlockDetected = errors.New("deadlock detected")

	// ErrLockWaitTimeout is returned when a statement waited longer than
	// innodb_lock_wait_timeout for a row lock (MySQL error 1205)
	ErrLockWaitTimeout = errors.New("lock wait timeout exceeded")

	// ErrConnectionFailed is returned when the server connection was lost,
	// killed, or could not be established
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

	// ErrorCategoryTransient covers deadlocks, lock wait timeouts, and
	// connection-count limits. The same operation may succeed when retried.
	ErrorCategoryTransient ErrorCategory = "transient"

	// ErrorCategoryConnection covers lost or refused connections. The
	// operation may succeed after the connection is re-established.
	ErrorCategoryConnection ErrorCategory = "connection"

	// ErrorCategoryCritical covers server-side resource exhaustion (disk
	// full, table full) that requires operator attention.
	ErrorCategoryCritical ErrorCategory = "critical"

	// ErrorCategoryUnknown covers everything this package cannot classify.
	ErrorCategoryUnknown ErrorCategory = "unknown"
)

// TranslateError converts GORM and MySQL driver errors into the
// standardized sentinels above. GORM already maps the common constraint
// violations when TranslateError is enabled on the dialector; the error
// number switch below catches what GORM passes through untranslated.
// Client-side connection failures never carry a server error number, so
// they are matched against the driver's own sentinels instead. Errors
// that match nothing are returned unchanged.
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

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062:
			return ErrDuplicateKey
		case 1451, 1452:
			return ErrForeignKey
		case 1048, 1406, 3819, 4025:
			// NOT NULL, data too long, CHECK (MySQL), CHECK (MariaDB).
			return ErrInvalidData
		case 1213:
			return ErrDeadlockDetected
		case 1205:
			return ErrLockWaitTimeout
		case 1053, 1927:
			// Server shutdown in progress, connection killed.
			return ErrConnectionFailed
		}
		return err
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return ErrConnectionFailed
	}

	// context.DeadlineExceeded satisfies net.Error, so cancellation has
	// to be ruled out before the net check claims it for the connection
	// bucket.
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrConnectionFailed
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
	case errors.Is(translated, ErrDeadlockDetected),
		errors.Is(translated, ErrLockWaitTimeout):
		return ErrorCategoryTransient
	case errors.Is(translated, ErrConnectionFailed):
		return ErrorCategoryConnection
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTransient
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case 1040, 1203:
			// Too many connections, too many user connections.
			return ErrorCategoryTransient
		case 1021, 1114:
			// Disk full, table full.
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

// IsCriticalError reports whether the error indicates a server-side failure
// that requires operator attention.
func IsCriticalError(err error) bool {
	return GetErrorCategory(err) == ErrorCategoryCritical
}

// TranslateError implements Client.
func (m *MariaDB) TranslateError(err error) error {
	return TranslateError(err)
}

// GetErrorCategory implements Client.
func (m *MariaDB) GetErrorCategory(err error) ErrorCategory {
	return GetErrorCategory(err)
}

// IsRetryable implements Client.
func (m *MariaDB) IsRetryable(err error) bool {
	return IsRetryableError(err)
}

// IsTemporary implements Client.
func (m *MariaDB) IsTemporary(err error) bool {
	return IsTemporaryError(err)
}

// IsCritical implements Client.
func (m *MariaDB) IsCritical(err error) bool {
	return IsCriticalError(err)
}
