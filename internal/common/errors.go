// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Storage errors.
	ErrNotFound           = errors.New("not found")
	ErrBackendUnavailable = errors.New("backend unavailable")

	// Resolution errors.
	ErrUnsupportedIntent = errors.New("unsupported query intent")
	ErrMissingInvoiceID  = errors.New("invoice ID not found in query")

	// Generation errors.
	ErrGenerationFailed = errors.New("generation failed")
	ErrNoBackend        = errors.New("no generation backend available")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(err error, userMessage string) *UserError {
	return &UserError{
		Err:         err,
		UserMessage: userMessage,
	}
}

// UserMessage extracts a user-friendly message from an error chain,
// falling back to the raw error text.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	return err.Error()
}
