package hses

import (
	"fmt"
	"os"
)

// LeveledLogger is the logging sink used by Client and the mock server.
// A nil logger passed to NewClient or mock.NewServer is replaced with the
// default stdout/stderr implementation below.
type LeveledLogger interface {
	Info(msg string)
	Infof(format string, args ...interface{})
	Warning(msg string)
	Warningf(format string, args ...interface{})
	Error(msg string)
	Errorf(format string, args ...interface{})
	Fatal(msg string)
	Fatalf(format string, args ...interface{})
}

var _ LeveledLogger = (*logger)(nil)

type logger struct {
	prefix string
}

// NewLogger returns the default LeveledLogger implementation, prefixing
// every line with prefix.
func NewLogger(prefix string) LeveledLogger {
	return &logger{prefix: prefix}
}

func (l *logger) Info(msg string)    { l.write(false, "info", msg) }
func (l *logger) Warning(msg string) { l.write(false, "warn", msg) }
func (l *logger) Error(msg string)   { l.write(true, "error", msg) }

func (l *logger) Infof(format string, args ...interface{}) {
	l.write(false, "info", fmt.Sprintf(format, args...))
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.write(false, "warn", fmt.Sprintf(format, args...))
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.write(true, "error", fmt.Sprintf(format, args...))
}

func (l *logger) Fatal(msg string) {
	l.Error(msg)
	os.Exit(1)
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	l.Errorf(format, args...)
	os.Exit(1)
}

func (l *logger) write(stderr bool, level, msg string) {
	line := fmt.Sprintf("%s [%s]: %s\n", l.prefix, level, msg)
	if stderr {
		os.Stderr.WriteString(line)
		return
	}
	os.Stdout.WriteString(line)
}
