// Package encio provides the byte-level io used while walking a save file, as well as error types.
package encio

import (
	"errors"
	"io"
)

var (
	// MaxCount is the default sanity bound for counts decoded from the stream.
	// Counted sequences with a larger count fail with CountBoundError before any element is read.
	//
	// It sits well above any count observed in real save files; a larger count almost always means
	// the grammar has lost its place in the stream.
	MaxCount = 0xffff

	// MaxText is the sanity bound for the length of decoded text strings.
	// Labels in the format are never longer than this.
	MaxText = 0x400
)

// ReadFull reads from r, completely filling the buffer. It returns the number of bytes read.
// If the buffer cannot be filled, a TruncatedInputError is returned with offset as the position of the first byte wanted.
// Other errors from r are returned as they are.
func ReadFull(buff []byte, r io.Reader, offset int64) (int, error) {
	n, err := r.Read(buff)
	if n == len(buff) {
		return n, nil
	}

	end := n
	for end < len(buff) && err == nil && n > 0 {
		n, err = r.Read(buff[end:])
		end += n
	}

	switch {
	case end == len(buff):
		return end, nil
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return end, &TruncatedInputError{
			Offset: offset,
			Want:   len(buff),
			Got:    end,
		}
	default:
		return end, err
	}
}
