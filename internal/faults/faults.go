// Package faults defines the error taxonomy shared by the mindframe managers.
//
// Three kinds of failure exist in this system:
//   - ValidationError: malformed or missing input — the request is rejected
//     before any state mutation.
//   - NotFoundError: an unknown template/session/chain/step id — rejected,
//     no mutation.
//   - PersistenceError: a blobstore read/write failed — logged by the caller,
//     the operation proceeds in-memory and the requester is not blocked.
//
// Tool handlers map ValidationError and NotFoundError to caller-facing error
// results; PersistenceError never reaches the caller.
package faults

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input fields.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown entity id.
type NotFoundError struct {
	Kind string // "template", "session", "chain", "step"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// PersistenceError wraps a blobstore failure.
type PersistenceError struct {
	Dataset string
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting dataset %q: %v", e.Dataset, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
