package codepage

import (
	"fmt"
	"strings"
)

// RowSize is the number of bytes rendered on one hexdump row.
const RowSize = 16

// Rows renders b as hexdump rows, the first byte of b being at absolute offset off.
//
//	0000001f  53 55 42 54 45 52 52 41  4e 45 41 4e 5f 41 4e 49  |SUBTERRANEAN_ANI|
//
// Short final rows are padded so the text column stays aligned.
// An empty b renders no rows.
func Rows(off int64, b []byte) []string {
	rows := make([]string, 0, (len(b)+RowSize-1)/RowSize)
	for start := 0; start < len(b); start += RowSize {
		end := start + RowSize
		if end > len(b) {
			end = len(b)
		}
		rows = append(rows, Row(off+int64(start), b[start:end]))
	}
	return rows
}

// Row renders a single hexdump row of at most RowSize bytes.
func Row(off int64, b []byte) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%08x ", off)

	for i := 0; i < RowSize; i++ {
		if i%8 == 0 {
			sb.WriteByte(' ')
		}
		if i < len(b) {
			fmt.Fprintf(&sb, "%02x ", b[i])
		} else {
			sb.WriteString("   ")
		}
	}

	sb.WriteString(" |")
	for _, c := range b {
		sb.WriteRune(Printable(c))
	}
	sb.WriteByte('|')
	return sb.String()
}

// Octets renders b as space separated hex octets, i.e. "41 42 43".
func Octets(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
