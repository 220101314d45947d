package internal

import (
	"github.com/pkg/errors"
)

var (
	// ErrTypeMismatch is raised when two variables that must share a value
	// type do not, or when a value does not fit its variable.
	ErrTypeMismatch = errors.New("variable value type mismatch")

	// ErrNotBool is raised when a condition variable does not hold a bool.
	ErrNotBool = errors.New("condition variable must hold a bool")
)

// violation aborts on a programming error. The panic value is an error
// wrapping kind, so callers that recover can match it with errors.Is.
func violation(kind error, format string, args ...any) {
	err := errors.Wrapf(kind, format, args...)
	logger().WithError(err).Error("variable contract violation")
	panic(err)
}

// TypeMismatch returns the error a typed projection panics with.
func TypeMismatch(got, want any) error {
	return errors.Wrapf(ErrTypeMismatch, "variable holds %v, expected %v", got, want)
}
