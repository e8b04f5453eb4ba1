package desc

import (
	"fmt"

	"github.com/stewi1014/savedump/encio"
)

// Fixed width, little-endian, signed integers. They parse to int64.
var (
	Byte  = Integer{width: 1, name: "byte"}
	Short = Integer{width: 2, name: "short"}
	Int   = Integer{width: 4, name: "int"}
)

// Integer is a fixed width little-endian signed integer.
type Integer struct {
	width int
	name  string
}

// Width returns the number of bytes the integer occupies.
func (d Integer) Width() int {
	return d.width
}

// String implements fmt.Stringer.
func (d Integer) String() string {
	return d.name
}

// Parse implements Descriptor.
func (d Integer) Parse(src *encio.Source) (Value, error) {
	n, err := d.read(src)
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (d Integer) read(src *encio.Source) (int64, error) {
	b, err := src.Read(d.width)
	if err != nil {
		return 0, err
	}

	switch d.width {
	case 1:
		return int64(encio.DecodeInt8(b)), nil
	case 2:
		return int64(encio.DecodeInt16(b)), nil
	case 4:
		return int64(encio.DecodeInt32(b)), nil
	default:
		panic(fmt.Sprintf("desc: unsupported integer width %v", d.width))
	}
}

// Skip implements Descriptor.
func (d Integer) Skip(src *encio.Source) error {
	return src.Discard(d.width)
}

// Dump implements Descriptor.
func (d Integer) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	n, err := d.read(src)
	if err != nil {
		return err
	}
	return t.Printf("(%s 0x%x) %d", d.name, off, n)
}
