package cli

import (
	"io"
	"log/slog"
)

// NewLogger builds the process logger. format "json" selects the JSON
// handler; anything else gets the text handler.
func NewLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
