// Package savedump walks undocumented binary save files with a grammar of format descriptors,
// producing a diagnostic trace for reverse engineering them.
//
// A grammar is a desc.Descriptor tree, built in Go from the desc package, or compiled from YAML with the grammar package.
// Dump drives the walk: it writes one line for everything it reads, and on the first structural violation writes
// the failing element's offset and a hexdump of the bytes there, then returns the violation.
//
// savedump/desc provides the descriptors and the trace engine.
//
// savedump/encio provides the byte source and error types.
//
// savedump/codepage provides CP437 decoding and hexdumps.
package savedump

import (
	"context"
	"io"

	"github.com/go-kit/log/level"

	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/encio"
)

// Dump walks r with the grammar root, writing the trace to w.
//
// Lines are written as they're produced, so the trace up to a failure is kept.
// Any error is the first structural violation found (see encio for their types), encio.ErrStopped if
// the operator stopped the walk at a checkpoint, or an error writing to w.
func Dump(ctx context.Context, w io.Writer, r io.Reader, root desc.Descriptor, config *Config) error {
	config = config.copyAndFill()

	traceConfig := desc.TraceConfig{
		Logger:       config.Logger,
		Highlight:    config.Highlight,
		ContextBytes: config.ContextBytes,
	}
	if config.Interactive {
		traceConfig.Input = config.Input
	}

	trace := desc.NewTrace(ctx, w, traceConfig)
	src := encio.NewSource(r)

	level.Debug(config.Logger).Log("msg", "dump started", "interactive", config.Interactive)
	err := trace.DumpRoot(root, src)
	if err != nil {
		level.Debug(config.Logger).Log("msg", "dump failed", "offset", src.Tell(), "err", err)
		return err
	}

	level.Debug(config.Logger).Log("msg", "dump finished", "offset", src.Tell())
	return nil
}

// Parse walks r with the grammar root, returning the parsed value without writing a trace.
func Parse(r io.Reader, root desc.Descriptor) (desc.Value, error) {
	return root.Parse(encio.NewSource(r))
}
