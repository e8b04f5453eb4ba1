// Package codepage decodes the legacy 8-bit text found in save files, and renders byte spans as hexdumps.
package codepage

import (
	"strings"
	"unicode"

	"golang.org/x/text/encoding/charmap"
)

// Table is the code page text is decoded with. It is IBM code page 437.
var Table = charmap.CodePage437

// DecodeByte returns the rune b represents.
func DecodeByte(b byte) rune {
	return Table.DecodeByte(b)
}

// Decode decodes b into a string.
func Decode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		sb.WriteRune(DecodeByte(c))
	}
	return sb.String()
}

// Printable returns the rune b represents, or '.' if that rune isn't printable.
func Printable(b byte) rune {
	r := DecodeByte(b)
	if !unicode.IsPrint(r) {
		return '.'
	}
	return r
}
