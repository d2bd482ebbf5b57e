package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access denied")
	ErrBadRequest   = errors.New("bad request")
)

// ValidationError carries the complete list of violations for one request.
// It is always recoverable by the caller: fix the input and retry.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid form data: %d violation(s)", len(e.Violations))
}

// NewValidationError wraps a non-empty violation list.
func NewValidationError(violations []Violation) error {
	return &ValidationError{Violations: violations}
}
