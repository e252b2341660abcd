package errors

import (
	"errors"
	"fmt"
)

// Error categories surfaced by the owner front-end
var (
	// ErrValidation is a field-level failure detected locally; no network call is made
	ErrValidation = errors.New("validation failed")
	// ErrAuthorization is a role mismatch that blocks session creation
	ErrAuthorization = errors.New("not authorized")
	// ErrNetwork is any non-2xx response or transport failure from the backend
	ErrNetwork = errors.New("backend request failed")
	// ErrDataShape is an unexpected response shape, e.g. a non-array property list
	ErrDataShape = errors.New("unexpected response shape")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// General errors
	ErrNotFound = errors.New("not found")
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

// UserMessager is implemented by errors that carry a message safe to display
type UserMessager interface {
	UserMessage() string
}

// MessageOr returns the displayable message carried by err, or fallback
func MessageOr(err error, fallback string) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return fallback
}
