package desc_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/maxatome/go-testdeep/td"
	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/encio"
)

func TestInteger(t *testing.T) {
	testCases := []struct {
		d    desc.Integer
		in   []byte
		want int64
	}{
		{d: desc.Byte, in: le(int8(0)), want: 0},
		{d: desc.Byte, in: le(int8(127)), want: 127},
		{d: desc.Byte, in: le(int8(-128)), want: -128},
		{d: desc.Short, in: le(int16(0x19)), want: 0x19},
		{d: desc.Short, in: le(int16(-1)), want: -1},
		{d: desc.Short, in: le(int16(-1 << 15)), want: -1 << 15},
		{d: desc.Int, in: le(int32(0x4b)), want: 0x4b},
		{d: desc.Int, in: le(int32(1<<31 - 1)), want: 1<<31 - 1},
		{d: desc.Int, in: le(int32(-1 << 31)), want: -1 << 31},
	}

	for _, tC := range testCases {
		t.Run(fmt.Sprintf("%v %v", tC.d, tC.want), func(t *testing.T) {
			src := source(append(tC.in, 0xff))
			v, err := tC.d.Parse(src)
			if err != nil {
				t.Fatal(err)
			}

			td.Cmp(t, v, tC.want)
			td.Cmp(t, src.Tell(), int64(tC.d.Width()))
		})
	}
}

func TestIntegerTruncated(t *testing.T) {
	src := source([]byte{1, 2, 3})
	_, err := desc.Int.Parse(src)
	td.CmpTrue(t, errors.Is(err, encio.ErrTruncated))
}

func TestIntegerDump(t *testing.T) {
	got, err := dump(desc.NewTuple(desc.Int, desc.Short, desc.Byte), le(int32(42), int16(-2), int8(9)))
	td.CmpNoError(t, err)
	td.Cmp(t, got, []string{
		"(tuple 0x0)",
		"  [0] (int 0x0) 42",
		"  [1] (short 0x4) -2",
		"  [2] (byte 0x6) 9",
	})
}
