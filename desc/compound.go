package desc

import (
	"strconv"

	"github.com/stewi1014/savedump/encio"
)

// children is the ordered list of a composite's elements.
type children interface {
	len() int
	at(i int) (tag string, d Descriptor)
}

// sequence is a children of one descriptor repeated n times, tagged by index.
type sequence struct {
	elem Descriptor
	n    int
}

func (s sequence) len() int { return s.n }

func (s sequence) at(i int) (string, Descriptor) { return strconv.Itoa(i), s.elem }

type list []Descriptor

func (l list) len() int { return len(l) }

func (l list) at(i int) (string, Descriptor) { return strconv.Itoa(i), l[i] }

type named struct {
	names []string
	elem  Descriptor
}

func (n named) len() int { return len(n.names) }

func (n named) at(i int) (string, Descriptor) { return n.names[i], n.elem }

// composite holds the rendering options shared by all composites.
type composite struct {
	label string
	dense bool
}

func parseChildren(src *encio.Source, c children) ([]Value, error) {
	values := make([]Value, 0, c.len())
	for i := 0; i < c.len(); i++ {
		_, d := c.at(i)
		v, err := d.Parse(src)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func skipChildren(src *encio.Source, c children) error {
	for i := 0; i < c.len(); i++ {
		_, d := c.at(i)
		if err := d.Skip(src); err != nil {
			return err
		}
	}
	return nil
}

// dumpChildren dumps the header line, then each child one level deeper,
// or the dense block if the composite is dense.
func (o composite) dumpChildren(t *Trace, src *encio.Source, header string, c children) error {
	if o.label != "" {
		header = o.label
	}
	if header != "" {
		if err := t.Printf("%s", header); err != nil {
			return err
		}
	}

	if o.dense {
		return dumpDense(t.Child(""), src, c)
	}

	for i := 0; i < c.len(); i++ {
		tag, d := c.at(i)
		if err := t.DumpChild(tag, d, src); err != nil {
			return err
		}
	}
	return nil
}

// dumpDense parses every child inside a capture scope, then writes the captured bytes as a hexdump,
// a line of the children's values, and, if there is more than one value, a line of their statistics.
// Children with nil values (validation, annotations) are left out of the values and statistics.
func dumpDense(t *Trace, src *encio.Source, c children) error {
	start := src.Tell()
	values := make([]Value, 0, c.len())

	src.OpenCapture()
	for i := 0; i < c.len(); i++ {
		tag, d := c.at(i)
		off := src.Tell()
		v, err := d.Parse(src)
		if err != nil {
			captured := src.CloseCapture()
			if herr := t.Hexdump(start, captured); herr != nil {
				return herr
			}
			return t.Child(tag).Recover(src, off, err)
		}
		if v != nil {
			values = append(values, v)
		}
	}
	captured := src.CloseCapture()

	if err := t.Hexdump(start, captured); err != nil {
		return err
	}
	if err := t.Printf("values: %s", Format(values)); err != nil {
		return err
	}
	if len(values) > 1 {
		return t.Printf("stats: %v", Summarize(values))
	}
	return nil
}

// NewTuple returns a Tuple of the given descriptors.
func NewTuple(elems ...Descriptor) Tuple {
	return Tuple{
		elems: append(list(nil), elems...),
	}
}

// Tuple is an ordered, fixed list of descriptors. It parses to a []Value of its elements' values.
type Tuple struct {
	composite
	elems list
}

// Label returns a copy of the Tuple with its dump headed by label.
func (d Tuple) Label(label string) Tuple {
	d.label = label
	return d
}

// Dense returns a copy of the Tuple that dumps as a single dense block.
func (d Tuple) Dense() Tuple {
	d.dense = true
	return d
}

// Len returns the number of elements in the Tuple.
func (d Tuple) Len() int {
	return len(d.elems)
}

// Parse implements Descriptor.
func (d Tuple) Parse(src *encio.Source) (Value, error) {
	return parseChildren(src, d.elems)
}

// Skip implements Descriptor.
func (d Tuple) Skip(src *encio.Source) error {
	return skipChildren(src, d.elems)
}

// Dump implements Descriptor.
func (d Tuple) Dump(t *Trace, src *encio.Source) error {
	return d.dumpChildren(t, src, "(tuple 0x"+strconv.FormatInt(src.Tell(), 16)+")", d.elems)
}

// NewArray returns an Array of n elem.
func NewArray(n int, elem Descriptor) Array {
	if n < 0 {
		panic("desc: negative array size")
	}
	return Array{
		elems: sequence{elem: elem, n: n},
	}
}

// Array is a fixed number of repetitions of one descriptor. It parses to a []Value.
type Array struct {
	composite
	elems sequence
}

// Label returns a copy of the Array with its dump headed by label.
func (d Array) Label(label string) Array {
	d.label = label
	return d
}

// Dense returns a copy of the Array that dumps as a single dense block.
func (d Array) Dense() Array {
	d.dense = true
	return d
}

// Parse implements Descriptor.
func (d Array) Parse(src *encio.Source) (Value, error) {
	return parseChildren(src, d.elems)
}

// Skip implements Descriptor.
func (d Array) Skip(src *encio.Source) error {
	return skipChildren(src, d.elems)
}

// Dump implements Descriptor.
func (d Array) Dump(t *Trace, src *encio.Source) error {
	header := "(array 0x" + strconv.FormatInt(src.Tell(), 16) + ") " + strconv.Itoa(d.elems.n)
	return d.dumpChildren(t, src, header, d.elems)
}

// NewNamed returns a Named that applies elem once for each name.
func NewNamed(names []string, elem Descriptor) Named {
	return Named{
		elems: named{
			names: append([]string(nil), names...),
			elem:  elem,
		},
	}
}

// Named pairs a fixed list of names with one descriptor applied once per name.
// It parses to a []Field, and tags dump lines with the names instead of indices.
type Named struct {
	composite
	elems named
}

// Label returns a copy of the Named with its dump headed by label.
func (d Named) Label(label string) Named {
	d.label = label
	return d
}

// Dense returns a copy of the Named that dumps as a single dense block.
func (d Named) Dense() Named {
	d.dense = true
	return d
}

// Parse implements Descriptor.
func (d Named) Parse(src *encio.Source) (Value, error) {
	values, err := parseChildren(src, d.elems)
	if err != nil {
		return nil, err
	}

	fields := make([]Field, len(values))
	for i := range values {
		fields[i] = Field{Name: d.elems.names[i], Value: values[i]}
	}
	return fields, nil
}

// Skip implements Descriptor.
func (d Named) Skip(src *encio.Source) error {
	return skipChildren(src, d.elems)
}

// Dump implements Descriptor.
func (d Named) Dump(t *Trace, src *encio.Source) error {
	return d.dumpChildren(t, src, "(named 0x"+strconv.FormatInt(src.Tell(), 16)+")", d.elems)
}

// NewCounted returns a Counted of elem, bounded by encio.MaxCount.
func NewCounted(elem Descriptor) Counted {
	return Counted{
		elem:  elem,
		bound: encio.MaxCount,
	}
}

// Counted is a sequence of elem prefixed by its 4 byte signed count. It parses to a []Value.
// Counts outside [0, bound] fail with a CountBoundError before any element is read.
type Counted struct {
	composite
	elem  Descriptor
	bound int
}

// Bound returns a copy of the Counted with the given sanity bound.
func (d Counted) Bound(bound int) Counted {
	d.bound = bound
	return d
}

// Label returns a copy of the Counted with its count line prefixed by label.
func (d Counted) Label(label string) Counted {
	d.label = label
	return d
}

// Dense returns a copy of the Counted that dumps its elements as a single dense block.
func (d Counted) Dense() Counted {
	d.dense = true
	return d
}

func (d Counted) count(src *encio.Source) (int, error) {
	off := src.Tell()
	n, err := encio.ReadInt32(src)
	if err != nil {
		return 0, err
	}
	if n < 0 || int(n) > d.bound {
		return 0, &encio.CountBoundError{Offset: off, Count: int(n), Bound: d.bound}
	}
	return int(n), nil
}

// Parse implements Descriptor.
func (d Counted) Parse(src *encio.Source) (Value, error) {
	n, err := d.count(src)
	if err != nil {
		return nil, err
	}
	return parseChildren(src, sequence{elem: d.elem, n: n})
}

// Skip implements Descriptor.
func (d Counted) Skip(src *encio.Source) error {
	n, err := d.count(src)
	if err != nil {
		return err
	}
	return skipChildren(src, sequence{elem: d.elem, n: n})
}

// Dump implements Descriptor.
func (d Counted) Dump(t *Trace, src *encio.Source) error {
	off := src.Tell()
	n, err := d.count(src)
	if err != nil {
		return err
	}

	header := "(count 0x" + strconv.FormatInt(off, 16) + ") " + strconv.Itoa(n)
	if d.label != "" {
		header = d.label + " count = " + strconv.Itoa(n)
	}

	// The header is already built with the label; don't let dumpChildren replace it.
	opts := d.composite
	opts.label = ""
	return opts.dumpChildren(t, src, header, sequence{elem: d.elem, n: n})
}
