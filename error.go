package memoize

import (
	"errors"

	"github.com/swaggest/usecase/status"
)

// SentinelError is an error.
type SentinelError string

const (
	// ErrNothingToInvalidate indicates no reset callbacks were added to Invalidator.
	ErrNothingToInvalidate = SentinelError("nothing to invalidate")

	// ErrAlreadyInvalidated indicates recent invalidation.
	ErrAlreadyInvalidated = SentinelError("already invalidated")
)

// Error implements error.
func (e SentinelError) Error() string {
	return string(e)
}

// ErrKeyDerivation indicates the argument tuple could not be canonically serialized.
var ErrKeyDerivation = status.Wrap(errors.New("cannot derive memoization key"), status.InvalidArgument)

// KeyDerivationError details a key derivation failure.
//
// It matches ErrKeyDerivation with errors.Is and unwraps to the encoder error.
// No entry is created and no computation is attempted for the failed call.
type KeyDerivationError struct {
	cause error
}

// Error implements error.
func (e KeyDerivationError) Error() string {
	return "cannot derive memoization key: " + e.cause.Error()
}

// Unwrap returns the serialization error.
func (e KeyDerivationError) Unwrap() error {
	return e.cause
}

// Is matches ErrKeyDerivation and its status.
func (e KeyDerivationError) Is(err error) bool {
	return err == ErrKeyDerivation || errors.Is(ErrKeyDerivation, err)
}
