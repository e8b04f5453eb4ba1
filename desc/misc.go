package desc

import (
	"github.com/dustin/go-humanize"

	"github.com/stewi1014/savedump/encio"
)

// Bytes returns a descriptor for n bytes of not yet understood data.
func Bytes(n int) Raw {
	if n < 0 {
		panic("desc: negative bytes size")
	}
	return Raw{n: n}
}

// Raw is a fixed size region of raw bytes. It parses to a []byte, and dumps as a hexdump.
type Raw struct {
	n int
}

// Parse implements Descriptor.
func (d Raw) Parse(src *encio.Source) (Value, error) {
	b, err := src.Read(d.n)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Skip implements Descriptor.
func (d Raw) Skip(src *encio.Source) error {
	return src.Discard(d.n)
}

// Dump implements Descriptor.
func (d Raw) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	b, err := src.Read(d.n)
	if err != nil {
		return err
	}
	return t.Hexdump(off, b)
}

// Rest consumes everything left in the stream. It parses to a []byte, and dumps as a hexdump.
var Rest = Remainder{}

// Remainder is the rest of a stream.
type Remainder struct{}

// Parse implements Descriptor.
func (Remainder) Parse(src *encio.Source) (Value, error) {
	b, err := src.ReadAll()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Skip implements Descriptor.
func (Remainder) Skip(src *encio.Source) error {
	_, err := src.ReadAll()
	return err
}

// Dump implements Descriptor.
func (Remainder) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	b, err := src.ReadAll()
	if err != nil {
		return err
	}
	if err := t.Printf("(rest 0x%x) %s", off, humanize.IBytes(uint64(len(b)))); err != nil {
		return err
	}
	return t.Hexdump(off, b)
}

// Skip returns a descriptor that reads past elem, validating it, but keeps no value and dumps nothing.
func Skip(elem Descriptor) Skipped {
	return Skipped{elem: elem}
}

// Skipped silences a descriptor.
type Skipped struct {
	elem Descriptor
}

// Parse implements Descriptor.
func (d Skipped) Parse(src *encio.Source) (Value, error) {
	return nil, d.elem.Skip(src)
}

// Skip implements Descriptor.
func (d Skipped) Skip(src *encio.Source) error {
	return d.elem.Skip(src)
}

// Dump implements Descriptor.
func (d Skipped) Dump(_ *Trace, src *encio.Source) error {
	return d.elem.Skip(src)
}

// Note returns an annotation that dumps text, reading nothing.
func Note(text string) Annotation {
	return Annotation{text: text}
}

// Annotation is a literal line in a dump.
type Annotation struct {
	text string
}

// Parse implements Descriptor.
func (Annotation) Parse(*encio.Source) (Value, error) { return nil, nil }

// Skip implements Descriptor.
func (Annotation) Skip(*encio.Source) error { return nil }

// Dump implements Descriptor.
func (d Annotation) Dump(t *Trace, _ *encio.Source) error {
	return t.Printf("%s", d.text)
}

// Checkpoint returns a descriptor that dumps prompt, then waits for the operator to enter a line.
// End of input or an interrupt stops the whole dump with encio.ErrStopped.
// It reads nothing, and does nothing when parsed or skipped.
func Checkpoint(prompt string) Pause {
	return Pause{prompt: prompt}
}

// Pause is an interactive checkpoint.
type Pause struct {
	prompt string
}

// Parse implements Descriptor.
func (Pause) Parse(*encio.Source) (Value, error) { return nil, nil }

// Skip implements Descriptor.
func (Pause) Skip(*encio.Source) error { return nil }

// Dump implements Descriptor.
func (d Pause) Dump(t *Trace, _ *encio.Source) error {
	if err := t.Printf("%s", d.prompt); err != nil {
		return err
	}
	return t.Pause()
}
