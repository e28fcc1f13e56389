package service

import (
	"errors"
	"fmt"
)

// Sentinel errors handlers translate into HTTP status codes.
var (
	// ErrValidation marks bad input shape or range. Wrap with context via Validationf.
	ErrValidation = errors.New("validation error")
	// ErrForbidden means the branch access gate denied the operation.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound covers lookups for records that do not exist or are not visible.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials covers bad email/password pairs without revealing which.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Validationf wraps ErrValidation with a user-facing message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}
