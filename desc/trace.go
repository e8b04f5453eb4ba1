package desc

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/stewi1014/savedump/codepage"
	"github.com/stewi1014/savedump/encio"
)

// ContextBytes is the default number of bytes hexdumped at the start of a failing element.
const ContextBytes = 256

// TraceConfig configures a Trace.
type TraceConfig struct {
	// Logger receives debug logs about failures. If nil, nothing is logged.
	Logger log.Logger

	// Input is read for operator responses at checkpoints.
	// If nil, checkpoints print their prompt and continue without blocking.
	Input io.Reader

	// Highlight, if set, is applied to failure lines before they are written.
	Highlight func(string) string

	// ContextBytes is the number of bytes hexdumped at a failing element. If <= 0, ContextBytes is used.
	ContextBytes int
}

// NewTrace returns a Trace writing lines to w.
// ctx is only consulted at checkpoints; cancelling it stops the dump there.
func NewTrace(ctx context.Context, w io.Writer, config TraceConfig) *Trace {
	if config.Logger == nil {
		config.Logger = log.NewNopLogger()
	}
	if config.ContextBytes <= 0 {
		config.ContextBytes = ContextBytes
	}

	out := &output{
		ctx:    ctx,
		w:      w,
		config: config,
	}
	if config.Input != nil {
		out.input = bufio.NewReader(config.Input)
	}

	return &Trace{out: out}
}

// Trace is the sink of dump lines for one walk.
// A Trace is positioned at a nesting depth, and carries the tag (positional index or name)
// its parent composite gave it. Lines are written, and flushed if w can be flushed, as they're produced,
// so the trace up to a failure survives it.
type Trace struct {
	out   *output
	depth int
	tag   string
}

// output is the state shared by every Trace of one walk.
type output struct {
	ctx    context.Context
	w      io.Writer
	input  *bufio.Reader
	config TraceConfig

	// reported is set once a failure's hexdump has been written;
	// enclosing composites then only name the child the failure passed through.
	reported bool
}

type flusher interface {
	Flush() error
}

// Child returns a Trace one level deeper, tagging its lines with tag.
func (t *Trace) Child(tag string) *Trace {
	return &Trace{
		out:   t.out,
		depth: t.depth + 1,
		tag:   tag,
	}
}

// Depth returns the nesting depth of t.
func (t *Trace) Depth() int {
	return t.depth
}

// Printf writes one line.
func (t *Trace) Printf(format string, args ...interface{}) error {
	return t.line(fmt.Sprintf(format, args...))
}

// Hexdump writes b as hexdump rows, the first byte of b being at absolute offset off.
func (t *Trace) Hexdump(off int64, b []byte) error {
	for _, row := range codepage.Rows(off, b) {
		if err := t.line(row); err != nil {
			return err
		}
	}
	return nil
}

func (t *Trace) line(text string) error {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", t.depth))
	if t.tag != "" {
		sb.WriteByte('[')
		sb.WriteString(t.tag)
		sb.WriteString("] ")
	}
	sb.WriteString(text)
	sb.WriteByte('\n')

	if _, err := io.WriteString(t.out.w, sb.String()); err != nil {
		return err
	}
	if f, ok := t.out.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}

// DumpChild dumps d as the child of t tagged tag.
// If d fails, the failure is reported as described by Recover, and d's error is returned.
func (t *Trace) DumpChild(tag string, d Descriptor, src *encio.Source) error {
	start := src.Tell()
	child := t.Child(tag)
	if err := d.Dump(child, src); err != nil {
		return child.Recover(src, start, err)
	}
	return nil
}

// DumpRoot dumps the root of a walk at t's own depth and tag.
// A failure of d itself is reported as described by Recover.
func (t *Trace) DumpRoot(d Descriptor, src *encio.Source) error {
	start := src.Tell()
	if err := d.Dump(t, src); err != nil {
		return t.Recover(src, start, err)
	}
	return nil
}

// Recover reports err, which happened reading an element that started at start, and returns err.
//
// It writes a line naming the offset and error, then seeks src back to start and hexdumps
// the bytes there, so the fault can be seen in context.
// Only the first report of a walk is hexdumped; later reports of the same failure, made by enclosing composites,
// are a single line each.
// Deliberate cancellation (ErrStopped, or the context ending) is returned without a report.
func (t *Trace) Recover(src *encio.Source, start int64, err error) error {
	if errors.Is(err, encio.ErrStopped) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	_ = t.fail(fmt.Sprintf("exception at offset 0x%x: %v", start, err))
	if t.out.reported {
		return err
	}
	t.out.reported = true

	level.Debug(t.out.config.Logger).Log("msg", "element failed", "tag", t.tag, "depth", t.depth, "offset", start, "err", err)

	if serr := src.Seek(start); serr != nil {
		_ = t.fail(fmt.Sprintf("cannot seek back to 0x%x: %v", start, serr))
		return err
	}

	b, rerr := src.Read(t.out.config.ContextBytes)
	if rerr != nil && !errors.Is(rerr, encio.ErrTruncated) {
		_ = t.fail(fmt.Sprintf("cannot read context at 0x%x: %v", start, rerr))
	}
	_ = t.Hexdump(start, b)
	return err
}

func (t *Trace) fail(text string) error {
	if h := t.out.config.Highlight; h != nil {
		text = h(text)
	}
	return t.line(text)
}

// Pause blocks until the operator enters a line.
// End of input, or the context ending, stops the dump with ErrStopped.
// Without an input, Pause returns immediately.
func (t *Trace) Pause() error {
	if t.out.input == nil {
		return nil
	}

	ctx := t.out.ctx
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", encio.ErrStopped, err)
	}

	read := make(chan error, 1)
	go func() {
		_, err := t.out.input.ReadString('\n')
		read <- err
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", encio.ErrStopped, ctx.Err())
	case err := <-read:
		if err != nil {
			return fmt.Errorf("%w: %v", encio.ErrStopped, err)
		}
		return nil
	}
}
