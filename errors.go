package ccvi

import (
	"errors"
	"fmt"

	"github.com/hupe1980/ccvi/container"
	"github.com/hupe1980/ccvi/document"
)

var (
	// ErrInvalidMargin is returned when the margin of error is outside [0.0, 1.0].
	ErrInvalidMargin = errors.New("margin error must be in [0.0, 1.0]")
)

// FormatError indicates a malformed or incomplete persisted document.
// Field holds the dotted path of the offending field when known.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type FormatError struct {
	Field  string
	Reason string
	cause  error
}

func (e *FormatError) Error() string {
	switch {
	case e.Field != "" && e.Reason != "":
		return fmt.Sprintf("format error: field %q: %s", e.Field, e.Reason)
	case e.Field != "":
		return fmt.Sprintf("format error: field %q", e.Field)
	case e.Reason != "":
		return fmt.Sprintf("format error: %s", e.Reason)
	default:
		return "format error"
	}
}

func (e *FormatError) Unwrap() error { return e.cause }

// OutOfBoundsError indicates a vector addressing a pixel outside the
// canvas. Coordinates are never clamped or wrapped.
type OutOfBoundsError struct {
	X      int
	Y      int
	Width  int
	Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("vector (%d, %d) out of bounds for %dx%d canvas", e.X, e.Y, e.Width, e.Height)
}

// UnsupportedInputError indicates a source that cannot be interpreted as a
// 4-channel raster image.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type UnsupportedInputError struct {
	Reason string
	cause  error
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported input: %s", e.Reason)
}

func (e *UnsupportedInputError) Unwrap() error { return e.cause }

// IOFailure indicates that an underlying byte read/write failed. The
// failure is surfaced as-is; the codec never retries.
type IOFailure struct {
	Op    string
	Path  string
	cause error
}

func (e *IOFailure) Error() string {
	return fmt.Sprintf("io failure: %s %s: %v", e.Op, e.Path, e.cause)
}

func (e *IOFailure) Unwrap() error { return e.cause }

// translateError classifies errors from lower layers into the public
// error kinds. Document and container parse failures become FormatError;
// everything else passes through untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var missing *document.ErrMissingField
	if errors.As(err, &missing) {
		return &FormatError{Field: missing.Field, Reason: "missing required field", cause: err}
	}
	var invalid *document.ErrInvalidField
	if errors.As(err, &invalid) {
		return &FormatError{Field: invalid.Field, Reason: invalid.Reason, cause: err}
	}
	var malformed *document.ErrMalformedDocument
	if errors.As(err, &malformed) {
		return &FormatError{Reason: "not a parseable document", cause: err}
	}
	if errors.Is(err, document.ErrNilDocument) {
		return &FormatError{Reason: "nil document", cause: err}
	}

	if errors.Is(err, container.ErrInvalidMagic) ||
		errors.Is(err, container.ErrInvalidVersion) ||
		errors.Is(err, container.ErrUnknownCompression) ||
		errors.Is(err, container.ErrUnknownCodec) ||
		errors.Is(err, container.ErrTruncated) {
		return &FormatError{Reason: "invalid container", cause: err}
	}
	var mismatch *container.ChecksumMismatchError
	if errors.As(err, &mismatch) {
		return &FormatError{Reason: "container checksum mismatch", cause: err}
	}

	return err
}
