//go:build !windows

// Package stderr captures output that C libraries (ALSA, audio codecs)
// write directly to file descriptor 2, bypassing os.Stderr. Without the
// capture those lines land in the middle of the alternate-screen UI.
package stderr

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
	"syscall"
)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
)

// Capture redirects fd 2 into a pipe and forwards every captured line
// to the logger. Must run early in main, before audio initialization.
// The program works without it; lines just go to the real stderr.
func Capture(log *slog.Logger) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		_ = syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true

	go func() {
		scanner := bufio.NewScanner(pipeRead)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				log.Warn("captured stderr", "line", line)
			}
		}
	}()

	return nil
}

// WriteOriginal writes past the capture to the real stderr, for fatal
// messages that must stay visible.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Restore puts the original stderr back. Call on program exit.
func Restore() {
	if !started {
		return
	}
	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	pipeWrite.Close()
	pipeRead.Close()
	started = false
}
