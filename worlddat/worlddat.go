// Package worlddat holds the grammar of world.dat save files.
package worlddat

import (
	_ "embed"

	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/grammar"
)

// DefaultPath is the file dumped when no path is given.
const DefaultPath = "world.dat"

// Grammar is the YAML grammar document of world.dat.
//
//go:embed world.yaml
var Grammar []byte

// Descriptor compiles Grammar.
func Descriptor() (desc.Descriptor, error) {
	return grammar.Compile(Grammar)
}
