package desc_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/encio"
)

// le builds little-endian test input. int8, int16 and int32 are encoded at their width,
// string and []byte are written as they are.
func le(parts ...interface{}) []byte {
	buff := new(bytes.Buffer)
	for _, p := range parts {
		switch x := p.(type) {
		case int8:
			buff.WriteByte(byte(x))
		case int16:
			b := make([]byte, 2)
			encio.EncodeInt16(b, x)
			buff.Write(b)
		case int32:
			b := make([]byte, 4)
			encio.EncodeInt32(b, x)
			buff.Write(b)
		case string:
			buff.WriteString(x)
		case []byte:
			buff.Write(x)
		default:
			panic("le: unsupported type")
		}
	}
	return buff.Bytes()
}

func source(b []byte) *encio.Source {
	return encio.NewSource(bytes.NewReader(b))
}

// dump dumps d over b, returning the trace lines and the error.
func dump(d desc.Descriptor, b []byte) ([]string, error) {
	return dumpConfig(d, b, desc.TraceConfig{})
}

func dumpConfig(d desc.Descriptor, b []byte, config desc.TraceConfig) ([]string, error) {
	out := new(bytes.Buffer)
	trace := desc.NewTrace(context.Background(), out, config)
	err := d.Dump(trace, source(b))
	return lines(out.String()), err
}

func lines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// spy counts how many times its element is used.
type spy struct {
	elem  desc.Descriptor
	calls *int
}

func (s spy) Parse(src *encio.Source) (desc.Value, error) {
	*s.calls++
	return s.elem.Parse(src)
}

func (s spy) Skip(src *encio.Source) error {
	*s.calls++
	return s.elem.Skip(src)
}

func (s spy) Dump(t *desc.Trace, src *encio.Source) error {
	*s.calls++
	return s.elem.Dump(t, src)
}

func TestSkipped(t *testing.T) {
	testCases := []struct {
		desc string
		d    desc.Descriptor
		in   []byte
	}{
		{desc: "int", d: desc.Int, in: le(int32(7), "tail")},
		{desc: "text", d: desc.Text, in: le(int16(3), "abc", "tail")},
		{desc: "raw string", d: desc.RawString, in: le(int16(0), "tail")},
		{desc: "counted", d: desc.NewCounted(desc.Short), in: le(int32(2), int16(1), int16(2), "tail")},
		{desc: "tuple", d: desc.NewTuple(desc.Byte, desc.Note("x"), desc.Bytes(3)), in: le(int8(1), "abc", "tail")},
		{desc: "dense array", d: desc.NewArray(2, desc.Int).Dense(), in: le(int32(1), int32(2), "tail")},
		{desc: "expect", d: desc.Expect(desc.Short, 9), in: le(int16(9), "tail")},
		{desc: "zeros", d: desc.ExpectZeros(5), in: le(make([]byte, 5), "tail")},
		{desc: "named", d: desc.NewNamed([]string{"a", "b"}, desc.Text), in: le(int16(1), "x", int16(1), "y", "tail")},
		{desc: "switch", d: desc.NewSwitch(desc.Byte, desc.Case{Key: 1, Desc: desc.Int}), in: le(int8(1), int32(4), "tail")},
		{desc: "rest", d: desc.Rest, in: le("everything")},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			parsed := source(tC.in)
			if _, err := tC.d.Parse(parsed); err != nil {
				t.Fatal(err)
			}

			skipped := source(tC.in)
			out := new(bytes.Buffer)
			if err := desc.Skip(tC.d).Dump(desc.NewTrace(context.Background(), out, desc.TraceConfig{}), skipped); err != nil {
				t.Fatal(err)
			}

			if out.Len() != 0 {
				t.Fatalf("skip dumped lines: %q", out.String())
			}
			if parsed.Tell() != skipped.Tell() {
				t.Fatalf("parse stopped at %v but skip stopped at %v", parsed.Tell(), skipped.Tell())
			}

			direct := source(tC.in)
			if err := tC.d.Skip(direct); err != nil {
				t.Fatal(err)
			}
			if parsed.Tell() != direct.Tell() {
				t.Fatalf("parse stopped at %v but Skip stopped at %v", parsed.Tell(), direct.Tell())
			}
		})
	}
}

func TestSkippedValidates(t *testing.T) {
	_, err := dump(desc.Skip(desc.Expect(desc.Int, 1)), le(int32(2)))
	if err == nil {
		t.Fatal("skipped expectation didn't fail")
	}
}
