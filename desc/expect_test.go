package desc_test

import (
	"errors"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/encio"
)

func TestExpect(t *testing.T) {
	testCases := []struct {
		desc string
		d    desc.Descriptor
		want desc.Value
		in   []byte
	}{
		{desc: "int", d: desc.Int, want: 0x4b, in: le(int32(0x4b))},
		{desc: "short", d: desc.Short, want: int16(0x19), in: le(int16(0x19))},
		{desc: "raw string", d: desc.RawString, want: "SUBTERRANEAN_ANIMAL_PEOPLES", in: le(int16(27), "SUBTERRANEAN_ANIMAL_PEOPLES")},
		{desc: "bytes", d: desc.Bytes(3), want: []byte{0, 0, 0}, in: le([]byte{0, 0, 0})},
		{desc: "tuple", d: desc.NewTuple(desc.Byte, desc.Text), want: []desc.Value{1, "a"}, in: le(int8(1), int16(1), "a")},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			plain := source(append(tC.in, 0xee))
			if _, err := tC.d.Parse(plain); err != nil {
				t.Fatal(err)
			}

			src := source(append(tC.in, 0xee))
			v, err := desc.Expect(tC.d, tC.want).Parse(src)
			td.CmpNoError(t, err)
			td.Cmp(t, v, nil)
			td.Cmp(t, src.Tell(), plain.Tell())

			got, err := dump(desc.Expect(tC.d, tC.want), tC.in)
			td.CmpNoError(t, err)
			td.Cmp(t, len(got), 0)
		})
	}
}

func TestExpectMismatch(t *testing.T) {
	src := source(le(int16(6), int16(5)))
	_, err := desc.Expect(desc.Short, 5).Parse(src)

	var uve *encio.UnexpectedValueError
	if !errors.As(err, &uve) {
		t.Fatalf("wanted UnexpectedValueError, got %v", err)
	}
	td.Cmp(t, uve, &encio.UnexpectedValueError{Offset: 0, Expected: 5, Got: int64(6)})
	td.CmpTrue(t, errors.Is(err, encio.ErrUnexpectedValue))

	// The short was consumed before it was compared.
	td.Cmp(t, src.Tell(), int64(2))
}

func TestExpectMismatchDiff(t *testing.T) {
	_, err := desc.Expect(desc.NewArray(2, desc.Byte), []desc.Value{1, 2}).Parse(source(le(int8(1), int8(3))))

	var uve *encio.UnexpectedValueError
	if !errors.As(err, &uve) {
		t.Fatalf("wanted UnexpectedValueError, got %v", err)
	}
	td.Cmp(t, uve.Diff, td.Contains("3"))
}

func TestExpectZeros(t *testing.T) {
	src := source(make([]byte, 4))
	v, err := desc.ExpectZeros(3).Parse(src)
	td.CmpNoError(t, err)
	td.Cmp(t, v, nil)
	td.Cmp(t, src.Tell(), int64(3))

	src = source([]byte{0, 1, 0})
	_, err = desc.ExpectZeros(3).Parse(src)
	var uve *encio.UnexpectedValueError
	if !errors.As(err, &uve) {
		t.Fatalf("wanted UnexpectedValueError, got %v", err)
	}
	td.Cmp(t, uve.Got, []byte{0, 1, 0})
	td.Cmp(t, src.Tell(), int64(3))
}

func TestEqual(t *testing.T) {
	testCases := []struct {
		desc string
		a, b desc.Value
		want bool
	}{
		{desc: "int literal", a: 5, b: int64(5), want: true},
		{desc: "int16 literal", a: int16(-1), b: int64(-1), want: true},
		{desc: "different ints", a: 5, b: int64(6), want: false},
		{desc: "string and bytes", a: "AB", b: []byte("AB"), want: true},
		{desc: "string and text", a: "AB", b: "AB", want: true},
		{desc: "empty bytes", a: []byte{}, b: []byte(nil), want: true},
		{desc: "nested", a: []desc.Value{1, "a"}, b: []desc.Value{int64(1), []byte("a")}, want: true},
		{desc: "fields", a: []desc.Field{{Name: "a", Value: 1}}, b: []desc.Field{{Name: "a", Value: int64(1)}}, want: true},
		{desc: "field names", a: []desc.Field{{Name: "a", Value: 1}}, b: []desc.Field{{Name: "b", Value: int64(1)}}, want: false},
		{desc: "int and bytes", a: 0, b: []byte{0}, want: false},
	}

	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			td.Cmp(t, desc.Equal(tC.a, tC.b), tC.want)
		})
	}
}
