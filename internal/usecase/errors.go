package usecase

import (
	"errors"

	"loyalty-program/pkg/utils"
)

// Typed error kinds surfaced to the HTTP layer. Every operation aborts
// on the first failure; nothing is swallowed except the referral reward
// resolution, which degrades to a no-op by design.
var (
	ErrInvalidCredentials    = errors.New("incorrect login or password")
	ErrIncorrectPassword     = errors.New("incorrect old password")
	ErrInvalidToken          = errors.New("incorrect verification token value")
	ErrInvalidCode           = errors.New("incorrect confirmation code value")
	ErrActivationFailed      = errors.New("account was not activated")
	ErrConfigurationNotReady = errors.New("program settings are not configured")
	ErrNotFound              = errors.New("not found")
	ErrNotAllowed            = errors.New("not allowed")
	ErrInvalidOperation      = errors.New("operation not available")
	ErrInvalidAccessToken    = errors.New("invalid social access token")
	ErrAccountExists         = errors.New("account already exists")
	ErrAccountExistsUnlinked = errors.New("account exists but is not linked with Facebook")
	ErrAccountNotFound       = errors.New("account does not exist")
	ErrSelfReferral          = errors.New("cannot create referral for own email")
	ErrDuplicateReferral     = errors.New("referral for this promotion and email already exists")
)

// ValidationError carries field-level messages from a failed
// persistence or request validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + utils.FormatValidationErrors(e.Fields)
}

func newValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}
