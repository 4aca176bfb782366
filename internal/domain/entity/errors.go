package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")

	// ErrDuplicateURL indicates add_article was called with a URL that already exists.
	// Callers of Submit should treat this as an idempotent success and resolve the
	// existing article_id rather than surfacing it as a failure.
	ErrDuplicateURL = errors.New("article url already exists")

	// ErrQueueEmpty indicates claim_next_queue_item found no queued rows.
	ErrQueueEmpty = errors.New("queue is empty")

	// ErrAlreadyClaimed indicates a queue item was claimed by another caller between
	// read and update; the caller should treat this the same as ErrQueueEmpty and retry.
	ErrAlreadyClaimed = errors.New("queue item already claimed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
