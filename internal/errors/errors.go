package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy for the auth core. Handlers map these to HTTP responses;
// the precise kind is only ever logged, never returned to the client when
// doing so would reveal whether an email exists.
var (
	// Credential errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("too many login attempts")

	// Account errors
	ErrAccountNotFound  = errors.New("account not found")
	ErrAccountSuspended = errors.New("account suspended")

	// Identity provider errors
	ErrProviderUnavailable = errors.New("identity provider unavailable")

	// Session errors
	ErrSessionExpired   = errors.New("session expired")
	ErrSessionMalformed = errors.New("session malformed")

	// Authorization errors
	ErrForbidden = errors.New("forbidden")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
