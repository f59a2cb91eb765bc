package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger. dev gets human readable debug output on
// stderr, everything else JSON on stdout.
func New(env string) *slog.Logger {
	if env == "dev" {
		return NewWithWriter(env, os.Stderr)
	}
	return NewWithWriter(env, os.Stdout)
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	if env == "dev" {
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// Discard is used by tests and by library callers that pass no logger.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
