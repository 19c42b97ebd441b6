// internal/util/errors.go
package util

import "errors"

// Errors returned by the user store and service. Handlers map them to HTTP
// statuses; anything else is a 500.
var (
	// ErrInvalidInput marks a request body that could not be decoded.
	ErrInvalidInput = errors.New("invalid input provided")
	// ErrNotFound marks an identifier with no stored user.
	ErrNotFound = errors.New("resource not found")
	// ErrUserNotFound marks an unknown login handle.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials marks a password that does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrStore wraps persistence failures.
	ErrStore = errors.New("store failure")
)

// IsError reports whether any error in err's chain matches target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
