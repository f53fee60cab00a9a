// ABOUTME: Error taxonomy for record store and repository failures
// ABOUTME: Sentinels for errors.Is plus typed wrappers carrying entity context
package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrStoreUnavailable means the record store could not complete a request.
	ErrStoreUnavailable = errors.New("record store unavailable")
	// ErrNotFound means the targeted record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrValidation means required fields are missing or malformed.
	ErrValidation = errors.New("validation failed")
)

// StoreError wraps a store failure with the entity and operation that hit it.
type StoreError struct {
	Entity string
	Op     string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreUnavailable, e.Err}
}

// NotFoundError identifies the missing record.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// FieldError describes one invalid field.
type FieldError struct {
	Field  string
	Reason string
}

// ValidationError lists every invalid field of a record.
type ValidationError struct {
	Entity string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Entity, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
