package desc

import (
	"strconv"

	"github.com/stewi1014/savedump/codepage"
	"github.com/stewi1014/savedump/encio"
)

// Length-prefixed strings. Both are prefixed by a 2 byte signed length.
var (
	// RawString parses to the []byte following its length.
	RawString = String{}

	// Text parses to the string the bytes following its length decode to.
	// Its length may not exceed encio.MaxText.
	Text = String{text: true}
)

// String is a string prefixed by its 2 byte length.
type String struct {
	text bool
}

// Parse implements Descriptor.
func (d String) Parse(src *encio.Source) (Value, error) {
	b, err := d.read(src)
	if err != nil {
		return nil, err
	}
	if d.text {
		return codepage.Decode(b), nil
	}
	return b, nil
}

func (d String) length(src *encio.Source) (int, error) {
	off := src.Tell()
	n, err := encio.ReadInt16(src)
	if err != nil {
		return 0, err
	}

	switch {
	case n < 0:
		return 0, &encio.NegativeLengthError{Offset: off, Length: int(n)}
	case d.text && int(n) > encio.MaxText:
		return 0, &encio.LengthBoundError{Offset: off, Length: int(n), Bound: encio.MaxText}
	}
	return int(n), nil
}

func (d String) read(src *encio.Source) ([]byte, error) {
	n, err := d.length(src)
	if err != nil {
		return nil, err
	}
	return src.Read(n)
}

// Skip implements Descriptor.
func (d String) Skip(src *encio.Source) error {
	n, err := d.length(src)
	if err != nil {
		return err
	}
	return src.Discard(n)
}

// Dump implements Descriptor.
func (d String) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	b, err := d.read(src)
	if err != nil {
		return err
	}

	if d.text {
		return t.Printf("(string 0x%x) %s", off, strconv.Quote(codepage.Decode(b)))
	}
	return t.Printf("(bytes 0x%x) [%s]", off, codepage.Octets(b))
}
