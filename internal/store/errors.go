// Package store is the typed data-access layer over the relational store.
// Every operation returns errors from a small taxonomy that callers map
// to user-facing responses; no translation happens inside this package.
package store

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error taxonomy. Handlers map these to HTTP statuses at the boundary.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrConflict        = errors.New("conflict")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnavailable     = errors.New("storage unavailable")
)

// notFound wraps ErrNotFound naming the missing entity type.
func notFound(entity string) error {
	return fmt.Errorf("%s: %w", entity, ErrNotFound)
}

// duplicateKey wraps ErrDuplicateKey naming the conflicting field.
func duplicateKey(field string) error {
	return fmt.Errorf("%s: %w", field, ErrDuplicateKey)
}

// invalidArgument wraps ErrInvalidArgument with a description of the input.
func invalidArgument(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidArgument)
}

// isDuplicate reports whether err is a uniqueness violation from either
// the postgres or the sqlite driver.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// isUnavailable reports whether err means the store itself cannot be
// reached, as opposed to a failure of the statement.
func isUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "database is closed")
}

// translateWrite maps a driver write error into the taxonomy, attributing
// uniqueness violations to the given field.
func translateWrite(err error, field string) error {
	if err == nil {
		return nil
	}
	if isDuplicate(err) {
		return duplicateKey(field)
	}
	if isUnavailable(err) {
		return fmt.Errorf("write failed: %w", ErrUnavailable)
	}
	return fmt.Errorf("write failed: %w", err)
}

// translateErr wraps a driver error, surfacing connection failures as
// ErrUnavailable. Write paths with uniqueness constraints use
// translateWrite instead.
func translateErr(action string, err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%s: %w", action, ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", action, err)
}
