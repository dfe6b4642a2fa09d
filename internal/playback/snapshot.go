package playback

import (
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// Snapshot is a consistent copy of the whole player state, taken under
// the engine lock. Presenters render from snapshots so they never see a
// half-applied mutation.
type Snapshot struct {
	State        State
	Current      *queue.Entry
	CurrentIndex int

	Entries      []queue.Entry
	UpNext       []queue.Entry
	History      []queue.Entry
	ShuffleOrder []int

	Position time.Duration
	Duration time.Duration
	Buffered time.Duration
	Stalled  bool

	Volume float64
	Muted  bool

	Repeat  queue.RepeatMode
	Shuffle bool

	// Err is the last surfaced failure. It stays visible while the
	// engine moves on to the next track, until DismissError clears it.
	Err        error
	RetryCount int
}

// HasTrack reports whether a track is loaded or loading.
func (s Snapshot) HasTrack() bool {
	return s.Current != nil
}

// Remaining returns the time left in the current track, or 0 while the
// duration is unknown.
func (s Snapshot) Remaining() time.Duration {
	if s.Duration <= 0 || s.Position >= s.Duration {
		return 0
	}
	return s.Duration - s.Position
}
