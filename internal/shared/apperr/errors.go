// Package apperr defines the error kinds shared by every feature.
// Transport code classifies failures with errors.Is against these kinds,
// never by matching on messages.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that a read by identifier found no row,
	// or that a write by identifier affected zero rows.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument indicates a structurally invalid identifier or filter.
	// It is always detected before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConflict indicates that a write collided with existing state,
	// such as a duplicate unique key.
	ErrConflict = errors.New("conflict")

	// ErrUnauthorized indicates missing or wrong credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an identified caller that may not perform the call.
	ErrForbidden = errors.New("forbidden")

	// ErrPersistence is the kind of every lower-level data-access failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrNoGeneratedID is returned when an insert did not yield a store-generated identifier.
	ErrNoGeneratedID = errors.New("store did not return a generated id")

	// ErrNoRowsAffected is returned when an insert reported zero affected rows.
	ErrNoRowsAffected = errors.New("no rows affected")
)

// PersistenceError wraps a data-access failure together with the operation
// that produced it. It matches ErrPersistence and unwraps to the cause.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	if e.Err == nil {
		return e.Op + ": " + ErrPersistence.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Is reports whether target is ErrPersistence.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

// Persistence wraps cause as a persistence failure of op.
// Errors that are already classified are returned unchanged.
func Persistence(op string, cause error) error {
	if cause == nil {
		return nil
	}
	if Classified(cause) {
		return cause
	}
	return &PersistenceError{Op: op, Err: cause}
}

// Classified reports whether err already carries one of the shared kinds.
func Classified(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrPersistence)
}

// InvalidArgument returns an invalid-argument error with a formatted reason.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// RequirePositiveID rejects non-positive identifiers before any I/O.
func RequirePositiveID(name string, id int64) error {
	if id <= 0 {
		return InvalidArgument("%s must be positive, got %d", name, id)
	}
	return nil
}
