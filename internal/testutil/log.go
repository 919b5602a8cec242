package testutil

import (
	"io"
	"log/slog"
)

// DiscardLogger returns a logger that drops everything, for components
// that take an injectable *slog.Logger.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
