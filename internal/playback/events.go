package playback

import (
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// StateChange is emitted when the playback state machine transitions.
type StateChange struct {
	Previous State
	Current  State
}

// TrackChange is emitted when the current entry changes, whatever the
// reason: explicit play, skip, jump, auto-advance, or history pop.
//
// Consumers handle all track-related side effects (scrobbling, play
// event reporting, notifications) in response to this event, never by
// polling the snapshot.
type TrackChange struct {
	Previous *queue.Entry
	Current  *queue.Entry
	Index    int
}

// QueueChange is emitted when queue contents change: set, enqueue,
// remove, reorder, clear, or an up-next pop.
type QueueChange struct {
	Entries []queue.Entry
	UpNext  []queue.Entry
	Index   int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  queue.RepeatMode
	Shuffle bool
}

// PositionChange is emitted on seeks and on periodic progress ticks.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
	Buffered time.Duration
	Stalled  bool
}

// VolumeChange is emitted when the volume level or mute flag changes.
type VolumeChange struct {
	Level float64
	Muted bool
}

// ErrorEvent is emitted when an asynchronous failure is surfaced. It
// names the track the failure happened on, which may no longer be the
// current one by the time a consumer renders it.
type ErrorEvent struct {
	Err   error
	Track *queue.Entry
}
