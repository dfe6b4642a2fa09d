// Package audio defines the audio-rendering collaborator boundary: the
// engine drives a Sink and reacts to its events, and never touches
// decoding or output directly.
package audio

import (
	"context"
	"time"
)

// Sink is the audio-rendering collaborator. It is exclusively owned by
// the playback engine; no other component may call into it.
//
// Load is asynchronous: it tears down any previous stream and answers
// with an EventReady or EventError on the event channel. Play returns
// the platform's acknowledgement; a rejection (for example an autoplay
// policy) is reported as its error.
type Sink interface {
	Load(url string)
	Play(ctx context.Context) error
	Pause()
	// Stop releases the loaded stream entirely; Pause keeps it.
	Stop()
	Seek(pos time.Duration)
	SetVolume(level float64)
	SetMuted(muted bool)
	Events() <-chan Event
	Close() error
}
