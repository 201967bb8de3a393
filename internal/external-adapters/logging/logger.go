// Package logging backs interfaces.Logger with log/slog and a tint handler.
package logging

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/ochairo/prebuild/internal/domain/interfaces"
)

// Options configures a Logger
type Options struct {
	Verbose bool // Enables debug messages
	NoColor bool
	NoTime  bool
}

// Logger implements interfaces.Logger on top of slog
type Logger struct {
	slog *slog.Logger
}

// New creates a Logger writing tinted text to w
func New(w io.Writer, opts Options) *Logger {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	handler := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
		NoColor:    opts.NoColor,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if opts.NoTime && a.Key == slog.TimeKey && len(groups) == 0 {
				return slog.Attr{}
			}
			return a
		},
	})
	return &Logger{slog: slog.New(handler)}
}

// NewConsole creates a Logger for hook output on stdout.
// Colour is only used on a terminal, and timestamps are dropped when the
// build orchestrator captures the output.
func NewConsole(verbose bool) *Logger {
	tty := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	return New(colorable.NewColorable(os.Stdout), Options{
		Verbose: verbose,
		NoColor: !tty,
		NoTime:  !tty,
	})
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.slog.Debug(msg, attrs(fields)...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.slog.Info(msg, attrs(fields)...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.slog.Warn(msg, attrs(fields)...)
}

// Error logs error messages; error values are tinted
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.slog.Error(msg, attrs(fields)...)
}

func attrs(fields []interfaces.Field) []any {
	out := make([]any, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			out = append(out, tint.Err(err))
			continue
		}
		out = append(out, slog.Any(f.Key, f.Value))
	}
	return out
}
