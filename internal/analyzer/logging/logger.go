// Package logging provides the analyzer's logger. Events go to the console
// through charmbracelet/log and, for INFO and above, to an append-only log file.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultFile is the log file used when the configuration names none.
	DefaultFile = "analyzer.log"

	// maxFileSizeMB caps the log file before lumberjack rotates it.
	maxFileSizeMB = 10

	timeFormat = "2006-01-02T15:04:05.000Z07:00"
)

// Options configures a Logger.
type Options struct {
	// Console receives human readable output. Defaults to os.Stderr.
	Console io.Writer
	// File is the path of the append-only log file. Empty disables it.
	File    string
	Verbose bool
}

// Logger writes every event to the console and mirrors INFO, WARN and ERROR
// events to the log file as "[timestamp] LEVEL: message" lines.
type Logger struct {
	console *log.Logger
	file    *lumberjack.Logger
	now     func() time.Time
}

// New builds a Logger from opts.
func New(opts Options) *Logger {
	out := opts.Console
	if out == nil {
		out = os.Stderr
	}

	level := log.InfoLevel
	if opts.Verbose {
		level = log.DebugLevel
	}

	l := &Logger{
		console: log.NewWithOptions(out, log.Options{
			Level:           level,
			ReportTimestamp: opts.Verbose,
			TimeFormat:      "15:04:05",
		}),
		now: time.Now,
	}

	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename: opts.File,
			MaxSize:  maxFileSizeMB,
		}
	}

	return l
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(Options{Console: io.Discard})
}

func (l *Logger) Debug(msg string, keyvals ...any) {
	l.console.Debug(msg, keyvals...)
}

func (l *Logger) Info(msg string, keyvals ...any) {
	l.console.Info(msg, keyvals...)
	l.append("INFO", msg, keyvals)
}

func (l *Logger) Warn(msg string, keyvals ...any) {
	l.console.Warn(msg, keyvals...)
	l.append("WARN", msg, keyvals)
}

func (l *Logger) Error(msg string, keyvals ...any) {
	l.console.Error(msg, keyvals...)
	l.append("ERROR", msg, keyvals)
}

// append writes one line and closes the file again, so nothing is held open
// between events.
func (l *Logger) append(level, msg string, keyvals []any) {
	if l.file == nil {
		return
	}

	line := formatLine(l.now(), level, msg, keyvals)

	if _, err := l.file.Write([]byte(line)); err != nil {
		l.console.Error("Failed to write to log file", "file", l.file.Filename, "err", err)
	}

	if err := l.file.Close(); err != nil {
		l.console.Debug("Failed to close log file", "file", l.file.Filename, "err", err)
	}
}

func formatLine(ts time.Time, level, msg string, keyvals []any) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s: %s", ts.UTC().Format(timeFormat), level, msg)

	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			fmt.Fprintf(&b, " %v=%v", keyvals[i], keyvals[i+1])
		} else {
			fmt.Fprintf(&b, " %v", keyvals[i])
		}
	}

	b.WriteByte('\n')

	return b.String()
}
