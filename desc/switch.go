package desc

import (
	"github.com/stewi1014/savedump/encio"
)

// Case is one branch of a Switch.
type Case struct {
	Key  Value
	Desc Descriptor
}

// NewSwitch returns a Switch dispatching on the value on parses to.
func NewSwitch(on Descriptor, cases ...Case) Switch {
	return Switch{
		on:    on,
		cases: append([]Case(nil), cases...),
	}
}

// Switch parses a discriminator, then continues with the case whose key equals it.
// It parses to the selected case's value.
// With no matching case and no default, it fails with UnexpectedValueError listing the case keys.
type Switch struct {
	on    Descriptor
	cases []Case
	def   Descriptor
}

// Default returns a copy of the Switch that continues with d when no case matches.
func (d Switch) Default(def Descriptor) Switch {
	d.def = def
	return d
}

func (d Switch) choose(src *encio.Source) (Value, Descriptor, error) {
	off := src.Tell()
	key, err := d.on.Parse(src)
	if err != nil {
		return nil, nil, err
	}

	for _, c := range d.cases {
		if Equal(c.Key, key) {
			return key, c.Desc, nil
		}
	}
	if d.def != nil {
		return key, d.def, nil
	}

	keys := make([]Value, len(d.cases))
	for i := range d.cases {
		keys[i] = d.cases[i].Key
	}
	return nil, nil, &encio.UnexpectedValueError{
		Offset:   off,
		Expected: keys,
		Got:      key,
	}
}

// Parse implements Descriptor.
func (d Switch) Parse(src *encio.Source) (Value, error) {
	_, c, err := d.choose(src)
	if err != nil {
		return nil, err
	}
	return c.Parse(src)
}

// Skip implements Descriptor.
func (d Switch) Skip(src *encio.Source) error {
	_, c, err := d.choose(src)
	if err != nil {
		return err
	}
	return c.Skip(src)
}

// Dump implements Descriptor.
func (d Switch) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	key, c, err := d.choose(src)
	if err != nil {
		return err
	}
	if err := t.Printf("(switch 0x%x) %s", off, Format(key)); err != nil {
		return err
	}
	return t.DumpChild("case", c, src)
}
