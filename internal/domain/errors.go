package domain

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every typed error below matches exactly one of them through
// errors.Is, except ReferentialError which matches both ErrReferential and
// ErrValidation.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrReferential = errors.New("unresolved reference")
	ErrConflict    = errors.New("conflict")
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a ValidationError for a field
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a missing entity, or a missing nested index on one
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a NotFoundError
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ReferentialError reports a parent reference that does not resolve
type ReferentialError struct {
	Field  string
	Entity string
	ID     string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s: referenced %s %s does not exist", e.Field, e.Entity, e.ID)
}

func (e *ReferentialError) Is(target error) bool {
	return target == ErrReferential || target == ErrValidation
}

// NewReferentialError creates a ReferentialError
func NewReferentialError(field, entity, id string) error {
	return &ReferentialError{Field: field, Entity: entity, ID: id}
}

// ConflictError reports a uniqueness violation or a delete blocked by dependents.
// Field is set when a single unique column is at fault.
type ConflictError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflictError creates a ConflictError
func NewConflictError(entity, reason string) error {
	return &ConflictError{Entity: entity, Reason: reason}
}
