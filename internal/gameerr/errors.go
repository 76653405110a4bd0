// Package gameerr defines the error taxonomy shared by the engine packages.
package gameerr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed caller input (dice, dates, tiers, targets).
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a missing task, order, employee, mission or planet.
	ErrNotFound = errors.New("not found")
	// ErrConstraint marks a well-formed request that violates game state.
	ErrConstraint = errors.New("constraint violated")
)

// Validation returns an error wrapping ErrValidation.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound returns an error wrapping ErrNotFound.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Constraint returns an error wrapping ErrConstraint.
func Constraint(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConstraint, fmt.Sprintf(format, args...))
}

// Kind returns a short machine-readable code for err, used by the API layer.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConstraint):
		return "constraint_violation"
	default:
		return "internal_error"
	}
}
