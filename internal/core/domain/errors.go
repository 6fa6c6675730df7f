package domain

import (
	"errors"
	"strings"
)

// Common domain errors
var (
	ErrInvalidCredentials = errors.New("invalid treasurer credentials")
	ErrForbidden          = errors.New("only the treasurer may change request status")
	ErrRequestNotFound    = errors.New("request not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidStatus      = errors.New("invalid request status")
	ErrNoSession          = errors.New("no active session")
)

// ValidationError carries every violated submission rule at once,
// not just the first one.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidationError creates a validation error from a list of violations
func NewValidationError(violations []string) *ValidationError {
	return &ValidationError{Errors: violations}
}

// AsValidationError unwraps err into a *ValidationError if possible
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
