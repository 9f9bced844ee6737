package logging

import "log/slog"

// Logger is the leveled logging interface the commands and servers write
// through. *slog.Logger satisfies it directly; NewLogger exists so callers
// get a usable default without nil checks, and Discard gives transports
// that own the terminal a way to silence operational output.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// NewLogger returns a Logger backed by the given slog.Logger. A nil logger
// falls back to slog.Default().
func NewLogger(logger *slog.Logger) Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger
}

// Discard returns a Logger that drops every record. The stdio transport
// uses it so operational messages never mix with the protocol stream.
func Discard() Logger {
	return discardLogger{}
}

type discardLogger struct{}

func (discardLogger) Debug(string, ...any) {}
func (discardLogger) Info(string, ...any)  {}
func (discardLogger) Warn(string, ...any)  {}
func (discardLogger) Error(string, ...any) {}
