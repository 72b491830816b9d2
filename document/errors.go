package document

import (
	"errors"
	"fmt"
)

// ErrNilDocument is returned when a nil document is passed where a value
// is required.
var ErrNilDocument = errors.New("nil document")

// ErrMalformedDocument indicates bytes that could not be decoded into the
// document wire form at all (syntax or top-level type errors).
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMalformedDocument struct {
	cause error
}

func (e *ErrMalformedDocument) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("malformed document: %v", e.cause)
	}
	return "malformed document"
}

func (e *ErrMalformedDocument) Unwrap() error { return e.cause }

// ErrMissingField indicates a required field absent from the wire form.
// Field is the dotted path, e.g. "planes[2].vectors[0].alpha".
type ErrMissingField struct {
	Field string
}

func (e *ErrMissingField) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// ErrInvalidField indicates a field present but with the wrong arity,
// type, or value range.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidField struct {
	Field  string
	Reason string
	cause  error
}

func (e *ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

func (e *ErrInvalidField) Unwrap() error { return e.cause }
