package desc

import (
	"github.com/stewi1014/savedump/encio"
)

// Expect returns a descriptor asserting that elem parses to want.
// Integer literals of any Go type, and string literals for raw strings, are accepted; see Equal.
func Expect(elem Descriptor, want Value) Expected {
	return Expected{
		elem: elem,
		want: want,
	}
}

// Expected asserts that its element parses to a constant.
// It parses to a nil Value and dumps nothing on success; on mismatch it fails with UnexpectedValueError,
// after its element has consumed its bytes.
type Expected struct {
	elem Descriptor
	want Value
}

// Want returns the expected value.
func (d Expected) Want() Value {
	return d.want
}

func (d Expected) check(src *encio.Source) error {
	off := src.Tell()
	got, err := d.elem.Parse(src)
	if err != nil {
		return err
	}

	if !Equal(d.want, got) {
		return &encio.UnexpectedValueError{
			Offset:   off,
			Expected: d.want,
			Got:      got,
			Diff:     diff(d.want, got),
		}
	}
	return nil
}

// Parse implements Descriptor.
func (d Expected) Parse(src *encio.Source) (Value, error) {
	return nil, d.check(src)
}

// Skip implements Descriptor.
func (d Expected) Skip(src *encio.Source) error {
	return d.check(src)
}

// Dump implements Descriptor.
func (d Expected) Dump(_ *Trace, src *encio.Source) error {
	return d.check(src)
}

// ExpectZeros returns a descriptor asserting that the next n bytes are all zero.
func ExpectZeros(n int) Zeros {
	if n < 0 {
		panic("desc: negative zeros size")
	}
	return Zeros{n: n}
}

// Zeros asserts that a region of fixed size is zero filled.
// Like Expected, it parses to a nil Value and dumps nothing on success.
type Zeros struct {
	n int
}

func (d Zeros) check(src *encio.Source) error {
	off := src.Tell()
	b, err := src.Read(d.n)
	if err != nil {
		return err
	}

	for _, c := range b {
		if c != 0 {
			return &encio.UnexpectedValueError{
				Offset:   off,
				Expected: make([]byte, d.n),
				Got:      b,
			}
		}
	}
	return nil
}

// Parse implements Descriptor.
func (d Zeros) Parse(src *encio.Source) (Value, error) {
	return nil, d.check(src)
}

// Skip implements Descriptor.
func (d Zeros) Skip(src *encio.Source) error {
	return d.check(src)
}

// Dump implements Descriptor.
func (d Zeros) Dump(_ *Trace, src *encio.Source) error {
	return d.check(src)
}
