package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrDatasetNotFound = fmt.Errorf("%w: dataset", ErrNotFound)
	ErrMetricNotFound  = fmt.Errorf("%w: metric", ErrNotFound)
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// Validation errors
	ErrInvalidDataset   = errors.New("invalid dataset")
	ErrNonNumeric       = errors.New("metric column contains non-numeric values")
	ErrColumnMismatch   = errors.New("metric columns have mismatched lengths")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// View-state errors
	ErrUnknownEvent   = errors.New("unknown view-state event")
	ErrInvalidEvent   = errors.New("invalid view-state event payload")
	ErrUnknownChart   = errors.New("unknown chart kind")
	ErrUnknownSection = errors.New("unknown drill-down section")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidDataset) ||
		errors.Is(err, ErrNonNumeric) ||
		errors.Is(err, ErrColumnMismatch) ||
		errors.Is(err, ErrInsufficientData)
}
