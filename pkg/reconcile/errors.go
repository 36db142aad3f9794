package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedIgnorePolicy is returned when an ignore policy entry is not a
	// scalar, a sequence of scalars or nil.
	ErrMalformedIgnorePolicy = errors.New("malformed ignore policy")

	// ErrMalformedStructure is returned when a compared value is not JSON-like.
	ErrMalformedStructure = errors.New("malformed structure")
)

// IgnorePolicyError describes the offending entry of an IgnorePolicy.
type IgnorePolicyError struct {
	Field string
	Value any
}

func (e *IgnorePolicyError) Error() string {
	return fmt.Sprintf("%s: field %q has unsupported default of type %T", ErrMalformedIgnorePolicy, e.Field, e.Value)
}

// Unwrap returns ErrMalformedIgnorePolicy.
func (e *IgnorePolicyError) Unwrap() error {
	return ErrMalformedIgnorePolicy
}

// StructureError points at the value that could not be compared.
type StructureError struct {
	Path   string
	Reason string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s at %s: %s", ErrMalformedStructure, e.Path, e.Reason)
}

// Unwrap returns ErrMalformedStructure.
func (e *StructureError) Unwrap() error {
	return ErrMalformedStructure
}
