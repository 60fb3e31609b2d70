package mariadb

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

func TestTranslateError(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"RecordNotFound", gorm.ErrRecordNotFound, ErrRecordNotFound},
		{"DuplicatedKey", gorm.ErrDuplicatedKey, ErrDuplicateKey},
		{"ForeignKeyViolated", gorm.ErrForeignKeyViolated, ErrForeignKey},
		{"InvalidData", gorm.ErrInvalidData, ErrInvalidData},
		{"WrappedNotFound", fmt.Errorf("query failed: %w", gorm.ErrRecordNotFound), ErrRecordNotFound},
		{"DuplicateEntryNumber", &mysql.MySQLError{Number: 1062}, ErrDuplicateKey},
		{"RowIsReferencedNumber", &mysql.MySQLError{Number: 1451}, ErrForeignKey},
		{"NoReferencedRowNumber", &mysql.MySQLError{Number: 1452}, ErrForeignKey},
		{"BadNullNumber", &mysql.MySQLError{Number: 1048}, ErrInvalidData},
		{"DataTooLongNumber", &mysql.MySQLError{Number: 1406}, ErrInvalidData},
		{"CheckViolatedNumber", &mysql.MySQLError{Number: 3819}, ErrInvalidData},
		{"MariaDBConstraintNumber", &mysql.MySQLError{Number: 4025}, ErrInvalidData},
		{"DeadlockNumber", &mysql.MySQLError{Number: 1213}, ErrDeadlockDetected},
		{"LockWaitTimeoutNumber", &mysql.MySQLError{Number: 1205}, ErrLockWaitTimeout},
		{"ServerShutdownNumber", &mysql.MySQLError{Number: 1053}, ErrConnectionFailed},
		{"ConnectionKilledNumber", &mysql.MySQLError{Number: 1927}, ErrConnectionFailed},
		{"WrappedDriverNumber", fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062}), ErrDuplicateKey},
		{"BadConn", driver.ErrBadConn, ErrConnectionFailed},
		{"InvalidConn", mysql.ErrInvalidConn, ErrConnectionFailed},
		{"DialFailure", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, ErrConnectionFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TranslateError(tc.in)
			if !errors.Is(got, tc.want) {
				t.Fatalf("TranslateError(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	t.Run("Nil", func(t *testing.T) {
		if got := TranslateError(nil); got != nil {
			t.Fatalf("TranslateError(nil) = %v, want nil", got)
		}
	})

	t.Run("UnknownPassthrough", func(t *testing.T) {
		customErr := fmt.Errorf("custom error")
		if got := TranslateError(customErr); got != customErr {
			t.Fatalf("TranslateError(custom) = %v, want the error unchanged", got)
		}
	})

	t.Run("UnknownNumberPassthrough", func(t *testing.T) {
		syntaxErr := &mysql.MySQLError{Number: 1064, Message: "syntax error"}
		if got := TranslateError(syntaxErr); got != error(syntaxErr) {
			t.Fatalf("TranslateError(1064) = %v, want the error unchanged", got)
		}
	})

	t.Run("DeadlineIsNotAConnectionFailure", func(t *testing.T) {
		// context.DeadlineExceeded satisfies net.Error; it must pass
		// through untranslated instead of landing in the connection
		// bucket.
		got := TranslateError(context.DeadlineExceeded)
		if errors.Is(got, ErrConnectionFailed) {
			t.Fatalf("TranslateError(deadline) = %v, want untranslated", got)
		}
		if !errors.Is(got, context.DeadlineExceeded) {
			t.Fatalf("TranslateError(deadline) = %v, lost the context error", got)
		}
	})

	t.Run("CanceledIsNotAConnectionFailure", func(t *testing.T) {
		got := TranslateError(context.Canceled)
		if errors.Is(got, ErrConnectionFailed) {
			t.Fatalf("TranslateError(canceled) = %v, want untranslated", got)
		}
	})
}

func TestGetErrorCategory(t *testing.T) {
	cases := []struct {
		name string
		in   error
		want ErrorCategory
	}{
		{"Nil", nil, ErrorCategoryNone},
		{"NotFound", gorm.ErrRecordNotFound, ErrorCategoryNotFound},
		{"DuplicateKey", gorm.ErrDuplicatedKey, ErrorCategoryConstraint},
		{"ForeignKey", &mysql.MySQLError{Number: 1452}, ErrorCategoryConstraint},
		{"Deadlock", &mysql.MySQLError{Number: 1213}, ErrorCategoryTransient},
		{"LockWaitTimeout", &mysql.MySQLError{Number: 1205}, ErrorCategoryTransient},
		{"ConnectionKilled", &mysql.MySQLError{Number: 1927}, ErrorCategoryConnection},
		{"BadConn", driver.ErrBadConn, ErrorCategoryConnection},
		{"TooManyConnections", &mysql.MySQLError{Number: 1040}, ErrorCategoryTransient},
		{"TooManyUserConnections", &mysql.MySQLError{Number: 1203}, ErrorCategoryTransient},
		{"DiskFull", &mysql.MySQLError{Number: 1021}, ErrorCategoryCritical},
		{"TableFull", &mysql.MySQLError{Number: 1114}, ErrorCategoryCritical},
		{"DeadlineExceeded", context.DeadlineExceeded, ErrorCategoryTransient},
		{"AlreadyTranslated", ErrConnectionFailed, ErrorCategoryConnection},
		{"Unknown", fmt.Errorf("custom error"), ErrorCategoryUnknown},
		{"UnknownNumber", &mysql.MySQLError{Number: 1064}, ErrorCategoryUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := GetErrorCategory(tc.in); got != tc.want {
				t.Fatalf("GetErrorCategory(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	deadlock := &mysql.MySQLError{Number: 1213}
	connection := &mysql.MySQLError{Number: 1927}
	diskFull := &mysql.MySQLError{Number: 1021}
	constraint := &mysql.MySQLError{Number: 1062}

	if !IsRetryableError(deadlock) {
		t.Error("deadlock should be retryable")
	}
	if IsRetryableError(connection) {
		t.Error("connection loss should not be immediately retryable")
	}
	if !IsTemporaryError(connection) {
		t.Error("connection loss should be temporary")
	}
	if !IsTemporaryError(deadlock) {
		t.Error("deadlock should be temporary")
	}
	if IsTemporaryError(constraint) {
		t.Error("constraint violation should not be temporary")
	}
	if !IsCriticalError(diskFull) {
		t.Error("disk full should be critical")
	}
	if IsCriticalError(deadlock) {
		t.Error("deadlock should not be critical")
	}
}

// The Client interface methods delegate to the package functions; they must
// work without an established connection.
func TestClassifierMethods(t *testing.T) {
	m := &MariaDB{}

	if got := m.TranslateError(gorm.ErrRecordNotFound); !errors.Is(got, ErrRecordNotFound) {
		t.Fatalf("TranslateError = %v, want ErrRecordNotFound", got)
	}
	if got := m.GetErrorCategory(gorm.ErrRecordNotFound); got != ErrorCategoryNotFound {
		t.Fatalf("GetErrorCategory = %q, want %q", got, ErrorCategoryNotFound)
	}
	if !m.IsRetryable(&mysql.MySQLError{Number: 1213}) {
		t.Error("deadlock should be retryable")
	}
	if !m.IsTemporary(mysql.ErrInvalidConn) {
		t.Error("invalid connection should be temporary")
	}
	if !m.IsCritical(&mysql.MySQLError{Number: 1114}) {
		t.Error("table full should be critical")
	}
}
