package savedump

import (
	"io"
	"os"

	"github.com/go-kit/log"
)

// Config defines configuration for Dump.
type Config struct {
	// Logger receives debug logs about the walk.
	// If nil, nothing is logged.
	Logger log.Logger

	// Interactive makes checkpoints wait for a line from Input.
	// If false, checkpoints only print their prompt.
	Interactive bool

	// Input is where checkpoints read from. If nil, os.Stdin is used.
	Input io.Reader

	// Highlight, if set, is applied to failure lines.
	Highlight func(string) string

	// ContextBytes is the number of bytes hexdumped at a failing element.
	// If <= 0, desc.ContextBytes is used.
	ContextBytes int
}

func (c *Config) copyAndFill() *Config {
	config := new(Config)
	if c != nil {
		*config = *c
	}

	if config.Logger == nil {
		config.Logger = log.NewNopLogger()
	}

	if config.Input == nil {
		config.Input = os.Stdin
	}

	return config
}
