package logging

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Logger is the main logger type. It has the novel property that it still
// functions if nil, but it doesn't log anything. It is safe for concurrent
// use. Each logger has a level below which messages are discarded and an
// optional dotted prefix inherited from its parent.
type Logger struct {
	// level is the logger's minimum enabled level.
	level Level
	// prefix is any prefix specified for the logger.
	prefix string
	// colorize indicates whether or not level tags should be colorized.
	colorize bool
}

// NewLogger creates a new root logger at the specified level, writing to
// standard error. Coloring is enabled automatically when standard error is a
// terminal.
func NewLogger(level Level) *Logger {
	return &Logger{
		level:    level,
		colorize: isatty.IsTerminal(os.Stderr.Fd()),
	}
}

// Level returns the logger's minimum enabled level.
func (l *Logger) Level() Level {
	if l == nil {
		return LevelDisabled
	}
	return l.level
}

// Sublogger creates a new sublogger with the specified name, inheriting the
// parent's level and coloring behavior.
func (l *Logger) Sublogger(name string) *Logger {
	if l == nil {
		return nil
	}
	prefix := name
	if l.prefix != "" {
		prefix = l.prefix + "." + name
	}
	return &Logger{
		level:    l.level,
		prefix:   prefix,
		colorize: l.colorize,
	}
}

// tag formats a level tag, colorized if enabled.
func (l *Logger) tag(level Level, paint func(string, ...interface{}) string) string {
	name := level.String()
	if l.colorize {
		return paint(name)
	}
	return name
}

// output writes a single log line, prefixed with the logger's dotted name and
// the level tag.
func (l *Logger) output(level Level, tag, line string) {
	if l.prefix != "" {
		log.Printf("[%s] %s: %s", tag, l.prefix, line)
	} else {
		log.Printf("[%s] %s", tag, line)
	}
}

func colorTag(c *color.Color, name string) string {
	return c.Sprint(name)
}

// Error logs at LevelError.
func (l *Logger) Error(v ...interface{}) {
	if l.Level() < LevelError {
		return
	}
	l.output(LevelError, l.tag(LevelError, color.RedString), fmt.Sprint(v...))
}

// Errorf logs at LevelError with Printf-style formatting.
func (l *Logger) Errorf(format string, v ...interface{}) {
	if l.Level() < LevelError {
		return
	}
	l.output(LevelError, l.tag(LevelError, color.RedString), fmt.Sprintf(format, v...))
}

// Warn logs at LevelWarn.
func (l *Logger) Warn(v ...interface{}) {
	if l.Level() < LevelWarn {
		return
	}
	l.output(LevelWarn, l.tag(LevelWarn, color.YellowString), fmt.Sprint(v...))
}

// Warnf logs at LevelWarn with Printf-style formatting.
func (l *Logger) Warnf(format string, v ...interface{}) {
	if l.Level() < LevelWarn {
		return
	}
	l.output(LevelWarn, l.tag(LevelWarn, color.YellowString), fmt.Sprintf(format, v...))
}

// Info logs at LevelInfo.
func (l *Logger) Info(v ...interface{}) {
	if l.Level() < LevelInfo {
		return
	}
	l.output(LevelInfo, "info", fmt.Sprint(v...))
}

// Infof logs at LevelInfo with Printf-style formatting.
func (l *Logger) Infof(format string, v ...interface{}) {
	if l.Level() < LevelInfo {
		return
	}
	l.output(LevelInfo, "info", fmt.Sprintf(format, v...))
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(v ...interface{}) {
	if l.Level() < LevelDebug {
		return
	}
	l.output(LevelDebug, "debug", fmt.Sprint(v...))
}

// Debugf logs at LevelDebug with Printf-style formatting.
func (l *Logger) Debugf(format string, v ...interface{}) {
	if l.Level() < LevelDebug {
		return
	}
	l.output(LevelDebug, "debug", fmt.Sprintf(format, v...))
}

// Trace logs at LevelTrace.
func (l *Logger) Trace(v ...interface{}) {
	if l.Level() < LevelTrace {
		return
	}
	l.output(LevelTrace, "trace", fmt.Sprint(v...))
}

// Tracef logs at LevelTrace with Printf-style formatting.
func (l *Logger) Tracef(format string, v ...interface{}) {
	if l.Level() < LevelTrace {
		return
	}
	l.output(LevelTrace, "trace", fmt.Sprintf(format, v...))
}
