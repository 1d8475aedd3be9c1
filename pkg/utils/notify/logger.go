package notify

import (
	"io"
	"os"
)

// Logger is the leveled message sink handed to planner components and collaborators.
type Logger interface {
	// Info writes an unstyled informational line. Report lines go through Info.
	Info(format string, args ...any)
	// Warn writes a warning.
	Warn(format string, args ...any)
	// Error writes an error.
	Error(format string, args ...any)
	// Success writes a success message.
	Success(format string, args ...any)
}

// WriterLogger is a Logger backed by notify messages on two writers.
type WriterLogger struct {
	out    io.Writer
	errOut io.Writer
}

// Compile-time interface compliance verification.
var _ Logger = (*WriterLogger)(nil)

// NewLogger creates a Logger writing info and success to out, warnings and errors to errOut.
// Nil writers default to os.Stdout and os.Stderr respectively.
func NewLogger(out, errOut io.Writer) *WriterLogger {
	if out == nil {
		out = os.Stdout
	}

	if errOut == nil {
		errOut = os.Stderr
	}

	return &WriterLogger{out: out, errOut: errOut}
}

// Info implements Logger.
func (l *WriterLogger) Info(format string, args ...any) {
	Plainf(l.out, format, args...)
}

// Warn implements Logger.
func (l *WriterLogger) Warn(format string, args ...any) {
	Warningf(l.errOut, format, args...)
}

// Error implements Logger.
func (l *WriterLogger) Error(format string, args ...any) {
	Errorf(l.errOut, format, args...)
}

// Success implements Logger.
func (l *WriterLogger) Success(format string, args ...any) {
	Successf(l.out, format, args...)
}

// Discard is a Logger that drops every message.
var Discard Logger = discardLogger{}

type discardLogger struct{}

func (discardLogger) Info(string, ...any)    {}
func (discardLogger) Warn(string, ...any)    {}
func (discardLogger) Error(string, ...any)   {}
func (discardLogger) Success(string, ...any) {}
