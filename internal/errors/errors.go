// Package errors provides the sentinel error kinds shared by all domain
// modules. Use cases return errors wrapping one of these sentinels and the
// HTTP layer maps the sentinel to a status code, so transport concerns never
// leak into business logic.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Every domain error wraps exactly one of these.
var (
	// ErrNotFound indicates the requested resource does not exist.
	// Reserved for administrative mutation paths; authentication paths
	// must use ErrUnauthorized to avoid identity-existence leaks.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates missing or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates a missing credential, an unknown identity,
	// or a credential mismatch. The three cases are deliberately
	// indistinguishable to callers.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an authenticated caller without the required
	// permission.
	ErrForbidden = errors.New("forbidden")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to an error while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
