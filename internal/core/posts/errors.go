package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post id resolves to no post
	ErrNotFound = errors.New("post not found")

	// ErrUnauthorized is returned when a mutation arrives without an
	// authenticated identity. The boundary turns this into a redirect to
	// the login flow with a return path.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotAuthor is returned when an authenticated caller tries to edit
	// somebody else's post. The boundary deliberately does not surface
	// this as an error page: it redirects to the post's detail view.
	ErrNotAuthor = errors.New("caller is not the post author")

	// ErrGroupNotFound is returned when the supplied group id doesn't exist
	ErrGroupNotFound = errors.New("group not found")
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

// IsNotFound checks if error is a post or group lookup miss
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrGroupNotFound)
}
