// Package logging builds the zerolog loggers used by the CLI and library.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// DefaultLevel keeps successful runs silent on stderr.
const DefaultLevel = zerolog.WarnLevel

// Sentinel errors for logger configuration.
var (
	ErrInvalidLevel  = errors.New("invalid log level")
	ErrInvalidFormat = errors.New("invalid log format")
)

// Options configures New.
type Options struct {
	Level  string    // trace, debug, info, warn, error; empty = warn
	Format string    // console or json; empty = console
	Out    io.Writer // nil = os.Stderr
}

// New creates a logger writing to opts.Out.
// Unlike a global zerolog setup, the level is applied per logger so that
// tests and embedding programs do not interfere with each other.
func New(opts Options) (zerolog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var zl zerolog.Logger
	switch strings.ToLower(opts.Format) {
	case "", FormatConsole:
		zl = zerolog.New(zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(out),
		})
	case FormatJSON:
		zl = zerolog.New(out)
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q (must be console or json)", ErrInvalidFormat, opts.Format)
	}

	return zl.Level(level).With().Timestamp().Logger(), nil
}

// ParseLevel converts a level name; empty selects DefaultLevel.
func ParseLevel(s string) (zerolog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLevel, nil
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return level, nil
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
