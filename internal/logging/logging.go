// Package logging builds the charmbracelet/log loggers used by every command.
// Full-screen frontends log to a file so output never tears the display;
// the window and server commands log to stderr.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flap/internal/config"
)

// DefaultFile is where the terminal frontend writes its log.
const DefaultFile = "~/.flap/flap.log"

// Options configures a logger.
type Options struct {
	Prefix string
	Level  string // debug, info, warn, error; empty means info
	File   string // Log file path; empty logs to stderr
}

// New creates a logger from opts. The returned close function releases the
// log file, if any, and is always safe to call.
func New(opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		parsed, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: invalid level %q: %w", opts.Level, err)
		}
		level = parsed
	}

	var w io.Writer = os.Stderr
	closeFn := func() error { return nil }

	if opts.File != "" {
		f, err := openFile(opts.File)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeFn = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// openFile opens path for appending, creating parent directories.
func openFile(path string) (*os.File, error) {
	expanded, err := config.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return nil, fmt.Errorf("logging: cannot create directory: %w", err)
	}

	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: cannot open log file: %w", err)
	}
	return f, nil
}
