// Package logging builds the structured run log.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// New creates a text logger at the provided level.
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     level,
	})

	return slog.New(handler)
}

// Open returns a logger appending to path, plus a close function. An empty
// path yields a logger that discards everything.
func Open(path string) (*slog.Logger, func() error, error) {
	if path == "" {
		return New(io.Discard, slog.LevelInfo), func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	return New(f, slog.LevelDebug), f.Close, nil
}
