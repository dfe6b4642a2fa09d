package audio

import "time"

const eventBufferSize = 64

// EventKind identifies a sink event.
type EventKind int

const (
	// EventReady means the stream is decoded far enough to start.
	EventReady EventKind = iota
	// EventProgress reports playback and buffer positions.
	EventProgress
	// EventEnded means the stream reached its natural end.
	EventEnded
	// EventError means decoding or transport failed.
	EventError
	// EventStalled means playback paused waiting for data.
	EventStalled
	// EventResumed means playback recovered from a stall.
	EventResumed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventReady:
		return "ready"
	case EventProgress:
		return "progress"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	case EventStalled:
		return "stalled"
	case EventResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// Event is a sink notification. Every event carries the URL it was
// produced for so consumers can discard events from a superseded load.
type Event struct {
	Kind EventKind
	URL  string

	Duration time.Duration // ready
	Position time.Duration // progress
	Buffered time.Duration // progress
	Err      error         // error
}
