package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced id or name is absent from the store.
	ErrNotFound = errors.New("record not found")

	// ErrMailNotConfigured indicates the SMTP transport credentials are unset.
	ErrMailNotConfigured = errors.New("mail transport not configured")
)

// ValidationError reports a missing or malformed request field. Handlers
// surface it as a 4xx response with the message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError is returned when a sale requests more units than
// the product has available. The availability check and the deduction are a
// single conditional update, so the reported numbers reflect the row state
// at the time the deduction was refused.
type InsufficientStockError struct {
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient inventory: available %d, requested %d", e.Available, e.Requested)
}

// DeleteOutcome distinguishes the delete result variants surfaced to callers.
type DeleteOutcome string

const (
	// DeleteOutcomeDeleted is a normal deletion of a valid record.
	DeleteOutcomeDeleted DeleteOutcome = "deleted"
	// DeleteOutcomeAutoDeleted means an invalid record was removed during
	// the delete request instead of being reported as an error.
	DeleteOutcomeAutoDeleted DeleteOutcome = "auto_deleted"
	// DeleteOutcomeAlreadyRemoved means the id did not exist; deletes are
	// idempotent from the caller's perspective.
	DeleteOutcomeAlreadyRemoved DeleteOutcome = "already_removed"
)
