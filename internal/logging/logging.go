// Package logging builds the structured diagnostic logger. User-facing
// status lines go through internal/ui instead.
package logging

import (
	"io"
	"log/slog"
)

// New creates a text logger writing to w. Verbose enables debug records;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, component string, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("component", component))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
