package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Error kinds. Every failure returned by this package wraps exactly one of
// them so callers can map it with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidState = errors.New("invalid state")

	ErrCountMismatch = fmt.Errorf("%w: slot count mismatch", ErrValidation)
	ErrInvalidMember = fmt.Errorf("%w: invalid slot id", ErrValidation)
)

// Error carries a human readable message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// CountMismatchError is returned by ReorderSlots when the supplied list does
// not have one entry per existing slot.
type CountMismatchError struct {
	Expected int
	Actual   int
}

func (e *CountMismatchError) Error() string {
	return fmt.Sprintf("Slot count does not match. Expected: %d, got: %d.", e.Expected, e.Actual)
}

func (e *CountMismatchError) Unwrap() error {
	return ErrCountMismatch
}

func notFound(format string, args ...interface{}) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflict(format string, args ...interface{}) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func forbidden(format string, args ...interface{}) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

func invalidState(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

// isUniqueViolation reports whether err comes from a unique index. Drivers
// that do not implement gorm's error translation are matched on their text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
