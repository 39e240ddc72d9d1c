package groups

import (
	"errors"
	"fmt"
)

// Sentinel errors for common group operations
var (
	// ErrGroupNotFound is returned when a slug or id resolves to no group
	ErrGroupNotFound = errors.New("group not found")

	// ErrSlugTaken is returned when creating a group with an existing slug
	ErrSlugTaken = errors.New("group slug already taken")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error is a group lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrGroupNotFound)
}
