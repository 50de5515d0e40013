package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every mapper.
var (
	// ErrInvalidValue matches any *ValidationError via errors.Is.
	ErrInvalidValue = errors.New("invalid value")

	// ErrNotPersisted is returned when an operation needs a primary key
	// but the record has never been saved (or was deleted).
	ErrNotPersisted = errors.New("record has not been saved")

	// ErrNotFound is returned when no row exists for a primary key.
	ErrNotFound = errors.New("record not found")
)

// ValidationError describes a rejected field assignment.
type ValidationError struct {
	Entity  string
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Is reports ErrInvalidValue as a match so callers can branch without a type assertion.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidValue
}

// Detail returns the message with the offending entity, field and value attached.
func (e *ValidationError) Detail() string {
	return fmt.Sprintf("%s.%s=%v: %s", e.Entity, e.Field, e.Value, e.Message)
}
