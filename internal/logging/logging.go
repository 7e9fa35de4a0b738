// Package logging configures the structured logger used for diagnostics.
// Events go to stderr as JSON lines so they never interleave with the
// result table on stdout.
package logging

import (
	"io"
	"log/slog"
)

// New returns a JSON slog.Logger writing to w. Verbose lowers the level
// to Debug; quiet raises it to Error so only hard failures surface.
func New(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case quiet:
		level = slog.LevelError
	case verbose:
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

// Discard returns a logger that drops everything; handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
