// Package logging builds the zerolog logger shared by every component.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// TimeFormat is used by the console writer.
const TimeFormat = "2006-01-02_15:04:05"

// Options selects where log lines go.
type Options struct {
	Level string
	// File receives the log unless Stderr is set. The TUI owns the
	// terminal, so interactive runs always log to a file.
	File   string
	Stderr bool
}

// New returns a logger and the closer for its file, if any.
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level: %w", err)
	}
	if level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	switch {
	case opts.Stderr:
		out = os.Stderr
	case opts.File != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o666)
		if err != nil {
			return zerolog.Nop(), closer, fmt.Errorf("failed to open log file: %w", err)
		}
		out, closer = f, f
	default:
		return zerolog.Nop(), closer, nil
	}

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: TimeFormat,
		NoColor:    !opts.Stderr,
	}).Level(level).With().Timestamp().Logger()

	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
