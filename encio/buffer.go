package encio

// Buffer is a growable byte buffer used for capture scopes.
// It operates similar to bytes.Buffer, but only ever appends.
type Buffer []byte

// Write implements io.Writer
func (b *Buffer) Write(buff []byte) (int, error) {
	return copy((*b)[b.grow(len(buff)):], buff), nil
}

// Len returns the length of the buffer.
func (b Buffer) Len() int {
	return len(b)
}

// Bytes returns a copy of the buffered data.
func (b Buffer) Bytes() []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// grow extends the buffer by n bytes, returning the offset of the new bytes.
func (b *Buffer) grow(n int) int {
	l := len(*b)
	if l+n <= cap(*b) {
		*b = (*b)[:l+n]
		return l
	}

	nb := make([]byte, l+n, cap(*b)*2+n)
	copy(nb, *b)
	*b = nb
	return l
}
