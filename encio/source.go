package encio

import (
	"errors"
	"io"
)

// NewSource returns a new Source reading from r.
// If r is also an io.Seeker, the Source can be seeked with Seek.
func NewSource(r io.Reader) *Source {
	return &Source{
		r: r,
	}
}

// Source is a forward-only reader over a stream that tracks its absolute offset,
// and can open nested capture scopes that retain every byte read while they are open.
//
// Capturing is transparent to readers; opening or closing a capture never changes what Read returns.
// A Source is not safe for concurrent use.
type Source struct {
	r        io.Reader
	off      int64
	captures []Buffer
}

// Read reads exactly n bytes.
// If fewer than n bytes are available it returns a TruncatedInputError; the bytes that were read
// still advance the offset and are still captured.
func (s *Source) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, &NegativeLengthError{Offset: s.off, Length: n}
	}

	buff := make([]byte, n)
	got, err := ReadFull(buff, s.r, s.off)
	s.advance(buff[:got])
	if err != nil {
		return buff[:got], err
	}
	return buff, nil
}

// ReadAll reads every remaining byte of the stream.
func (s *Source) ReadAll() ([]byte, error) {
	buff, err := io.ReadAll(s.r)
	s.advance(buff)
	return buff, err
}

// Discard reads and drops n bytes. Dropped bytes are still captured.
func (s *Source) Discard(n int) error {
	const chunk = 4096
	for n > 0 {
		size := n
		if size > chunk {
			size = chunk
		}
		if _, err := s.Read(size); err != nil {
			return err
		}
		n -= size
	}
	return nil
}

// Tell returns the current absolute offset.
func (s *Source) Tell() int64 {
	return s.off
}

// Seek moves the Source to the absolute offset off.
// It returns ErrNotSeekable if the underlying reader can't seek, or if a capture is open,
// as captured bytes must be a contiguous span of the stream.
func (s *Source) Seek(off int64) error {
	seeker, ok := s.r.(io.Seeker)
	if !ok || len(s.captures) > 0 {
		return ErrNotSeekable
	}

	n, err := seeker.Seek(off, io.SeekStart)
	if err != nil {
		return err
	}
	s.off = n
	return nil
}

// OpenCapture pushes a new empty capture scope.
func (s *Source) OpenCapture() {
	s.captures = append(s.captures, nil)
}

// CloseCapture pops the innermost capture scope and returns the bytes read while it was open.
// Popped bytes are folded into the enclosing scope, if there is one.
// It panics if no capture is open; that is always a programming error.
func (s *Source) CloseCapture() []byte {
	top := len(s.captures) - 1
	if top < 0 {
		panic(errors.New("encio: CloseCapture without open capture"))
	}

	captured := s.captures[top]
	s.captures[top] = nil
	s.captures = s.captures[:top]

	if top > 0 {
		_, _ = s.captures[top-1].Write(captured)
	}
	return captured
}

// Captures returns the number of open capture scopes.
func (s *Source) Captures() int {
	return len(s.captures)
}

// advance moves the offset past b, appending it to the innermost capture.
// Enclosing captures receive it when the innermost is closed.
func (s *Source) advance(b []byte) {
	s.off += int64(len(b))
	if top := len(s.captures) - 1; top >= 0 {
		_, _ = s.captures[top].Write(b)
	}
}
