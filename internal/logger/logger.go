// Package logger provides verbose logging for the wordspace CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow training and query work.
// Errors are always printed.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const sectionField = "section"

var std = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(lineFormatter{})
	l.SetLevel(logrus.ErrorLevel)
	return l
}

// lineFormatter renders entries as "[LEVEL] message" lines and
// section entries as "=== name ===" banners.
type lineFormatter struct{}

func (lineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	if name, ok := e.Data[sectionField]; ok {
		b.WriteString("\n=== ")
		b.WriteString(name.(string))
		b.WriteString(" ===\n")
		return []byte(b.String()), nil
	}
	b.WriteByte('[')
	b.WriteString(levelTag(e.Level))
	b.WriteString("] ")
	b.WriteString(e.Message)
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelTag(l logrus.Level) string {
	switch l {
	case logrus.DebugLevel, logrus.TraceLevel:
		return "DEBUG"
	case logrus.InfoLevel:
		return "INFO"
	case logrus.WarnLevel:
		return "WARN"
	default:
		return "ERROR"
	}
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	if v {
		std.SetLevel(logrus.DebugLevel)
		return
	}
	std.SetLevel(logrus.ErrorLevel)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	return std.IsLevelEnabled(logrus.DebugLevel)
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	std.Debugf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	if IsVerbose() {
		std.WithField(sectionField, name).Info()
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	if IsVerbose() {
		std.Infof(format, args...)
	}
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	if IsVerbose() {
		std.Warnf(format, args...)
	}
}

// Error prints an error message regardless of verbosity.
func Error(format string, args ...any) {
	std.Errorf(format, args...)
}
