// Package desc provides composable format descriptors for walking undocumented binary formats.
//
// A Descriptor describes one region of a byte stream. The same descriptor can parse the region into a Value,
// skip past it without keeping a value, or dump a human-readable trace of what it read through a Trace.
// A grammar for a whole file is a tree of descriptors, built once and never mutated.
//
// Every structural violation is fatal. Composites never recover from a failing child; they only add
// diagnostic output (the failing child's offset and a hexdump of the bytes there) before returning the
// child's error unchanged. See Trace.
package desc

import (
	"github.com/stewi1014/savedump/encio"
)

// Descriptor parses, skips and dumps one region of a stream.
//
// Descriptors hold no stream state, so one descriptor tree can be used against any number of Sources,
// one at a time.
//
// Descriptors must
// 1. Consume the same bytes regardless of whether Parse, Skip or Dump is called.
// 1. Validate the same way in Parse, Skip and Dump; skipping never skips validation.
// 1. Only read from the given Source, and never seek it.
type Descriptor interface {
	// Parse reads the region and returns its value.
	// Descriptors whose values carry no information (validation, annotations) return a nil Value.
	Parse(src *encio.Source) (Value, error)

	// Skip reads past the region without keeping its value.
	Skip(src *encio.Source) error

	// Dump reads the region, writing its trace lines to t.
	Dump(t *Trace, src *encio.Source) error
}

// Value is a parsed value.
// It is one of int64, []byte, string, []Value or []Field.
type Value = interface{}

// Field is a named value, as parsed by a Named descriptor.
type Field struct {
	Name  string
	Value Value
}
