package huffcomp

import (
	"errors"
)

var (
	// ErrEmptyInput is returned when compressing a zero-length input.
	ErrEmptyInput = errors.New("huffcomp: empty input")

	// ErrInputTooLarge is returned when the input holds more symbols than
	// the 32-bit symbol count can describe.
	ErrInputTooLarge = errors.New("huffcomp: input too large")

	// ErrMalformedTree is returned when a serialized tree cannot be parsed.
	ErrMalformedTree = errors.New("huffcomp: malformed tree")

	// ErrTruncatedStream is returned when an artifact ends before the
	// declared number of symbols has been decoded.
	ErrTruncatedStream = errors.New("huffcomp: truncated stream")

	// ErrCorruptTree is returned when decoding walks onto a node that
	// cannot exist in a well-formed tree.
	ErrCorruptTree = errors.New("huffcomp: corrupt tree")

	// ErrInputChanged is returned by CompressSeeker when the second pass
	// over its input does not see the bytes the first pass counted.
	ErrInputChanged = errors.New("huffcomp: input changed between passes")
)
