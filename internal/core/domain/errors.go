package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the core error taxonomy. HTTP handlers translate these
// into structured responses; everything else surfaces as an internal error.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrSeatsUnavailable means the schedule has no seats left to book.
	ErrSeatsUnavailable = errors.New("no seats available")
)

// ValidationError reports malformed or missing input, with per-field detail.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid input: %d field(s) failed validation", len(e.Fields))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
