//go:build windows

// Package stderr is a no-op on Windows, where the audio stack does not
// write ALSA-style noise to file descriptor 2.
package stderr

import (
	"log/slog"
	"os"
)

// Capture is a no-op on Windows.
func Capture(_ *slog.Logger) error {
	return nil
}

// WriteOriginal writes to stderr.
func WriteOriginal(msg string) {
	_, _ = os.Stderr.WriteString(msg)
}

// Restore is a no-op on Windows.
func Restore() {}
