package playback

import (
	"errors"
	"fmt"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// ResolveError means URL resolution failed after fallback and retries.
type ResolveError struct {
	TrackID string
	Title   string
	Err     error
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("resolve %q: %v", e.Title, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// PlayRejectedError means the sink refused to start output, for
// example under a platform autoplay policy. The stream itself is fine:
// the track stays loaded and playback settles paused.
type PlayRejectedError struct {
	TrackID string
	Title   string
	Err     error
}

func (e *PlayRejectedError) Error() string {
	return fmt.Sprintf("start %q: %v", e.Title, e.Err)
}

func (e *PlayRejectedError) Unwrap() error { return e.Err }

// TransportError means decoding or the network failed during load or
// playback.
type TransportError struct {
	TrackID string
	Title   string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("play %q: %v", e.Title, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// PersistenceError means a durable write failed. It is surfaced softly
// and never blocks or reverts playback.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a synchronous validation failure
// from a queue operation (queue full, bad index, unknown entry).
func IsValidation(err error) bool {
	return errors.Is(err, queue.ErrQueueFull) ||
		errors.Is(err, queue.ErrInvalidIndex) ||
		errors.Is(err, queue.ErrNotFound)
}
