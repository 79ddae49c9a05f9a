// Package obslog is a small leveled logger gated by the reasoner's
// verbosity config key (spec.md §6, §7: "observability is a log stream
// keyed by verbosity threshold"). Grounded on the teacher's
// cmd/server/main.go DEBUG-env-gated log.SetFlags idiom, extended with
// terminal-aware level coloring and humanized duration/count formatting.
package obslog

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Level tags a message's severity. Whether a message is emitted is decided
// by the threshold each logging method passes (Error and Warn 0, Info 1,
// Debug 2), not by the Level value itself.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "ERROR"
	case LevelWarn:
		return "WARN"
	case LevelInfo:
		return "INFO"
	case LevelDebug:
		return "DEBUG"
	default:
		return "LOG"
	}
}

func (l Level) ansiColor() string {
	switch l {
	case LevelError:
		return "\x1b[31m" // red
	case LevelWarn:
		return "\x1b[33m" // yellow
	case LevelInfo:
		return "\x1b[36m" // cyan
	case LevelDebug:
		return "\x1b[90m" // gray
	default:
		return ""
	}
}

const ansiReset = "\x1b[0m"

// Logger is a verbosity-gated logger. The zero value is not usable; use
// New.
type Logger struct {
	verbosity int
	colorize  bool
	out       *log.Logger
}

// New creates a Logger writing to w, gated at the given verbosity
// (spec.md §6's `verbosity` key: 0 = errors and warnings, higher numbers show
// more). Color is enabled only when w is a terminal, mirroring the
// teacher's DEBUG-env gate but keyed on verbosity instead of a boolean.
func New(w io.Writer, verbosity int) *Logger {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{
		verbosity: verbosity,
		colorize:  colorize,
		out:       log.New(w, "", log.LstdFlags),
	}
}

// Default creates a Logger writing to stderr at the given verbosity.
func Default(verbosity int) *Logger {
	return New(os.Stderr, verbosity)
}

func (l *Logger) log(level Level, threshold int, format string, args ...any) {
	if l.verbosity < threshold {
		return
	}
	tag := level.String()
	if l.colorize {
		tag = level.ansiColor() + tag + ansiReset
	}
	l.out.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// Error logs at verbosity threshold 0 — always emitted.
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, 0, format, args...) }

// Warn logs at verbosity threshold 0 — always emitted (malformed input /
// semantic misuse per spec.md §7 are logged-and-dropped, not silent).
func (l *Logger) Warn(format string, args ...any) { l.log(LevelWarn, 0, format, args...) }

// Info logs at verbosity threshold 1.
func (l *Logger) Info(format string, args ...any) { l.log(LevelInfo, 1, format, args...) }

// Debug logs at verbosity threshold 2.
func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, 2, format, args...) }

// Duration renders a nanosecond count with thousands separators for log
// lines, e.g. Duration("trace age", 340000000) is "trace age 340,000,000ns".
func Duration(label string, nanos int64) string {
	return fmt.Sprintf("%s %s", label, humanize.Comma(nanos)+"ns")
}

// Count renders n with thousands separators for log lines, e.g.
// "evicted 12,000 concepts".
func Count(n int) string {
	return humanize.Comma(int64(n))
}
