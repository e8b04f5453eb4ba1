package encio

import (
	"errors"
	"fmt"
)

// Every structural violation found while walking a file is fatal to the walk.
// The kinds are exposed as sentinels, and each is wrapped by a typed error carrying the offset and values involved,
// so callers can use either form:
//
//	var cbe *CountBoundError
//	if errors.As(err, &cbe) {
//		// inspect cbe.Count
//	} else if errors.Is(err, ErrTruncated) {
//		// ran out of input
//	}
var (
	// ErrTruncated is returned when fewer bytes are available than a read requires.
	ErrTruncated = errors.New("truncated input")

	// ErrNegativeLength is returned when a length prefix is negative.
	ErrNegativeLength = errors.New("negative length")

	// ErrLengthBound is returned when a text length prefix exceeds MaxText.
	ErrLengthBound = errors.New("length out of bounds")

	// ErrCountBound is returned when a count prefix is negative or exceeds its bound.
	ErrCountBound = errors.New("count out of bounds")

	// ErrUnexpectedValue is returned when a validated field doesn't hold its expected value.
	ErrUnexpectedValue = errors.New("unexpected value")

	// ErrStopped is returned when the operator ends a dump from an interactive checkpoint.
	// It is a deliberate cancellation, not a structural violation.
	ErrStopped = errors.New("stopped")

	// ErrNotSeekable is returned when seeking on a Source whose reader isn't an io.Seeker,
	// or while a capture is open.
	ErrNotSeekable = errors.New("not seekable")
)

// TruncatedInputError is returned when the stream ends before a read is satisfied.
type TruncatedInputError struct {
	Offset int64
	Want   int
	Got    int
}

// Error implements error.
func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("at 0x%x: want %v bytes but only got %v: %v", e.Offset, e.Want, e.Got, ErrTruncated)
}

// Unwrap returns ErrTruncated.
func (e *TruncatedInputError) Unwrap() error { return ErrTruncated }

// NegativeLengthError is returned when a string length prefix is negative.
type NegativeLengthError struct {
	Offset int64
	Length int
}

// Error implements error.
func (e *NegativeLengthError) Error() string {
	return fmt.Sprintf("at 0x%x: %v: %v", e.Offset, ErrNegativeLength, e.Length)
}

// Unwrap returns ErrNegativeLength.
func (e *NegativeLengthError) Unwrap() error { return ErrNegativeLength }

// LengthBoundError is returned when a text length prefix is larger than its bound.
type LengthBoundError struct {
	Offset int64
	Length int
	Bound  int
}

// Error implements error.
func (e *LengthBoundError) Error() string {
	return fmt.Sprintf("at 0x%x: %v: %v > %v", e.Offset, ErrLengthBound, e.Length, e.Bound)
}

// Unwrap returns ErrLengthBound.
func (e *LengthBoundError) Unwrap() error { return ErrLengthBound }

// CountBoundError is returned when a count prefix is outside [0, Bound].
type CountBoundError struct {
	Offset int64
	Count  int
	Bound  int
}

// Error implements error.
func (e *CountBoundError) Error() string {
	return fmt.Sprintf("at 0x%x: %v: %v is not in [0, %v]", e.Offset, ErrCountBound, e.Count, e.Bound)
}

// Unwrap returns ErrCountBound.
func (e *CountBoundError) Unwrap() error { return ErrCountBound }

// UnexpectedValueError is returned when a parsed value doesn't equal the value it was expected to.
// Diff is an optional human readable difference between the two.
type UnexpectedValueError struct {
	Offset   int64
	Expected interface{}
	Got      interface{}
	Diff     string
}

// Error implements error.
func (e *UnexpectedValueError) Error() string {
	str := fmt.Sprintf("at 0x%x: got %#v, expected %#v", e.Offset, e.Got, e.Expected)
	if e.Diff != "" {
		str += " (-expected +got):\n" + e.Diff
	}
	return str
}

// Unwrap returns ErrUnexpectedValue.
func (e *UnexpectedValueError) Unwrap() error { return ErrUnexpectedValue }
