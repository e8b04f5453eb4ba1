// Command savedump dumps a save file against a grammar, printing a trace of everything it reads.
//
// Without arguments it dumps world.dat in the working directory with the built in world.dat grammar.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kingpin/v2"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/term"

	"github.com/stewi1014/savedump"
	"github.com/stewi1014/savedump/desc"
	"github.com/stewi1014/savedump/encio"
	"github.com/stewi1014/savedump/grammar"
	"github.com/stewi1014/savedump/worlddat"
)

func main() {
	cmd := &dumpCommand{
		fs:     afero.NewOsFs(),
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	os.Exit(cmd.run(context.Background(), os.Args[1:]))
}

// dumpCommand dumps one file.
type dumpCommand struct {
	fs     afero.Fs
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	file        string
	grammar     string
	output      string
	interactive bool
	color       string
	logLevel    string
}

func (cmd *dumpCommand) app() *kingpin.Application {
	app := kingpin.New("savedump", "Dump a binary save file against a grammar of format descriptors.")
	app.UsageWriter(cmd.stderr)
	app.ErrorWriter(cmd.stderr)

	app.Arg("file", "Save file to dump.").Default(worlddat.DefaultPath).StringVar(&cmd.file)
	app.Flag("grammar", "YAML grammar to dump with. Defaults to the built in world.dat grammar.").PlaceHolder("FILE").StringVar(&cmd.grammar)
	app.Flag("output", "Write the trace to FILE instead of stdout.").Short('o').PlaceHolder("FILE").StringVar(&cmd.output)
	app.Flag("interactive", "Wait at checkpoints for a line on stdin.").Short('i').BoolVar(&cmd.interactive)
	app.Flag("color", "Highlight failures.").Default("auto").EnumVar(&cmd.color, "auto", "always", "never")
	app.Flag("log.level", "Only log messages with the given severity or above.").Default("info").EnumVar(&cmd.logLevel, "debug", "info", "warn", "error")
	return app
}

// run parses args and dumps, returning the exit status.
func (cmd *dumpCommand) run(ctx context.Context, args []string) int {
	if _, err := cmd.app().Parse(args); err != nil {
		fmt.Fprintf(cmd.stderr, "savedump: %v, try --help\n", err)
		return 2
	}

	ctx, stop := cmd.interruptContext(ctx)
	defer stop()

	logger := newLogger(cmd.stderr, cmd.logLevel)
	err := cmd.dump(ctx, logger)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, encio.ErrStopped):
		level.Info(logger).Log("msg", "stopped", "reason", err)
		return 0
	default:
		level.Error(logger).Log("msg", "dump failed", "file", cmd.file, "err", err)
		return 1
	}
}

// interruptContext returns the context to dump under.
// Interactive dumps catch the first interrupt and stop at the checkpoint they're waiting at;
// a second interrupt, or any interrupt of a non-interactive dump, kills the process.
func (cmd *dumpCommand) interruptContext(parent context.Context) (context.Context, context.CancelFunc) {
	if !cmd.interactive {
		return parent, func() {}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	go func() {
		<-ctx.Done()
		stop()
	}()
	return ctx, stop
}

func (cmd *dumpCommand) dump(ctx context.Context, logger log.Logger) error {
	root, err := cmd.root()
	if err != nil {
		return err
	}

	f, err := cmd.fs.Open(cmd.file)
	if err != nil {
		return errors.Wrap(err, "opening save file")
	}
	defer func() { _ = f.Close() }()

	fi, err := f.Stat()
	if err != nil {
		return errors.Wrap(err, "reading file info")
	}
	level.Info(logger).Log("msg", "dumping", "file", cmd.file, "size", humanize.Bytes(uint64(fi.Size())))

	out := cmd.stdout
	if cmd.output != "" {
		of, err := cmd.fs.Create(cmd.output)
		if err != nil {
			return errors.Wrap(err, "creating output file")
		}
		defer func() { _ = of.Close() }()
		out = of
	}

	if cmd.interactive {
		if in, ok := cmd.stdin.(*os.File); ok && !term.IsTerminal(int(in.Fd())) {
			level.Warn(logger).Log("msg", "stdin is not a terminal, checkpoints will read lines from it")
		}
	}

	w := bufio.NewWriter(out)
	err = savedump.Dump(ctx, w, f, root, &savedump.Config{
		Logger:      logger,
		Interactive: cmd.interactive,
		Input:       cmd.stdin,
		Highlight:   cmd.highlighter(out),
	})
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = errors.Wrap(ferr, "writing trace")
	}
	return err
}

// root compiles the grammar to dump with.
func (cmd *dumpCommand) root() (desc.Descriptor, error) {
	if cmd.grammar == "" {
		root, err := worlddat.Descriptor()
		return root, errors.Wrap(err, "compiling world.dat grammar")
	}

	doc, err := afero.ReadFile(cmd.fs, cmd.grammar)
	if err != nil {
		return nil, errors.Wrap(err, "reading grammar")
	}
	root, err := grammar.Compile(doc)
	return root, errors.Wrapf(err, "compiling %s", cmd.grammar)
}

func (cmd *dumpCommand) highlighter(out io.Writer) func(string) string {
	c := color.New(color.FgRed, color.Bold)
	switch cmd.color {
	case "always":
		c.EnableColor()
	case "never":
		c.DisableColor()
	default:
		if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return func(s string) string { return c.Sprint(s) }
}

func newLogger(w io.Writer, lvl string) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	var allow level.Option
	switch lvl {
	case "debug":
		allow = level.AllowDebug()
	case "warn":
		allow = level.AllowWarn()
	case "error":
		allow = level.AllowError()
	default:
		allow = level.AllowInfo()
	}
	return level.NewFilter(logger, allow)
}
