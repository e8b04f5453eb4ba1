package worlddat_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maxatome/go-testdeep/td"

	"github.com/stewi1014/savedump"
	"github.com/stewi1014/savedump/encio"
	"github.com/stewi1014/savedump/worlddat"
)

type world struct {
	bytes.Buffer
}

func (w *world) short(n int16) {
	b := make([]byte, 2)
	encio.EncodeInt16(b, n)
	w.Write(b)
}

func (w *world) int(n int32) {
	b := make([]byte, 4)
	encio.EncodeInt32(b, n)
	w.Write(b)
}

func (w *world) string(s string) {
	w.short(int16(len(s)))
	w.WriteString(s)
}

func (w *world) zeros(n int) {
	w.Write(make([]byte, n))
}

// emptyPairs writes n pairs of empty counted lists.
func (w *world) emptyPairs(n int) {
	for i := 0; i < n; i++ {
		w.int(0)
		w.int(0)
	}
}

// header writes everything before the subterranean records.
func (w *world) header() {
	w.short(1)
	w.zeros(168)
	w.string("Test World")

	// generated raw blocks, all empty.
	for i := 0; i < 4; i++ {
		w.int(0)
	}

	// tag blocks; only Material has a tag.
	w.int(1)
	w.string("IRON")
	for i := 1; i < 20; i++ {
		w.int(0)
	}

	w.int(7)
	w.int(8)
	w.int(2)
	w.int(3)
	w.int(1)
	w.int(0)
	w.zeros(58)
}

// record writes one subterranean record, returning the offset of its 0x4b marker.
func (w *world) record() int64 {
	w.string("SUBTERRANEAN_ANIMAL_PEOPLES")
	w.short(0x19)
	marker := int64(w.Len())
	w.short(0x4b)
	w.int(-1)
	w.zeros(3)
	w.short(2)
	w.emptyPairs(20)
	w.int(5)
	w.int(6)
	w.emptyPairs(11)
	w.emptyPairs(2)
	w.int(0)
	w.emptyPairs(9)
	w.zeros(0x12)
	w.int(0)
	w.emptyPairs(2)
	w.zeros(14)
	w.emptyPairs(15)
	w.emptyPairs(2)
	w.int(1)
	w.short(3)
	w.zeros(260)
	return marker
}

func newWorld() (*world, []int64) {
	w := new(world)
	w.header()
	markers := make([]int64, 11)
	for i := range markers {
		markers[i] = w.record()
	}
	return w, markers
}

func TestDescriptor(t *testing.T) {
	root, err := worlddat.Descriptor()
	td.CmpNoError(t, err)

	w, _ := newWorld()
	in := w.Bytes()

	src := encio.NewSource(bytes.NewReader(in))
	_, err = root.Parse(src)
	td.CmpNoError(t, err)
	td.Cmp(t, src.Tell(), int64(len(in)))

	src = encio.NewSource(bytes.NewReader(in))
	td.CmpNoError(t, root.Skip(src))
	td.Cmp(t, src.Tell(), int64(len(in)))
}

func TestDump(t *testing.T) {
	root, err := worlddat.Descriptor()
	td.CmpNoError(t, err)

	w, _ := newWorld()
	out := new(bytes.Buffer)
	td.CmpNoError(t, savedump.Dump(context.Background(), out, bytes.NewReader(w.Bytes()), root, nil))

	got := out.String()
	td.Cmp(t, strings.SplitN(got, "\n", 2)[0], "world.dat")
	td.Cmp(t, got, td.Contains(`"Test World"`))
	td.Cmp(t, got, td.Contains("[Material] Tag count = 1"))
	td.Cmp(t, got, td.Contains(`"IRON"`))
	td.Cmp(t, got, td.Contains("values: [3 1]"))
	td.Cmp(t, got, td.Contains("Point 5"))
	td.Cmp(t, got, td.Not(td.Contains("exception")))
}

func TestDumpMisaligned(t *testing.T) {
	root, err := worlddat.Descriptor()
	td.CmpNoError(t, err)

	w, markers := newWorld()
	in := w.Bytes()
	in[markers[2]] = 0x4c

	out := new(bytes.Buffer)
	err = savedump.Dump(context.Background(), out, bytes.NewReader(in), root, nil)

	var uve *encio.UnexpectedValueError
	if !errors.As(err, &uve) {
		t.Fatalf("wanted UnexpectedValueError, got %v", err)
	}
	td.Cmp(t, uve.Offset, markers[2])
	td.Cmp(t, uve.Got, int64(0x4c))
	td.Cmp(t, out.String(), td.Contains("exception at offset 0x"))
}
