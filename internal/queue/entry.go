// Package queue owns the ordered play queue, the up-next override list,
// play history, and the shuffle/repeat policy.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
)

// Origin tags how an entry got into the queue.
type Origin string

const (
	OriginUser     Origin = "user"
	OriginAutoplay Origin = "autoplay"
	OriginHistory  Origin = "history"
)

// Entry wraps a catalog track for queue membership. The same track may
// appear multiple times in a queue, so each entry carries its own
// instance identifier, distinct from the track id.
type Entry struct {
	InstanceID string
	Track      catalog.Track
	Origin     Origin
	AddedAt    time.Time
}

// NewEntry creates a queue entry for a track.
func NewEntry(track catalog.Track, origin Origin) Entry {
	return Entry{
		InstanceID: uuid.NewString(),
		Track:      track,
		Origin:     origin,
		AddedAt:    time.Now(),
	}
}

// RepeatMode defines the repeat behavior.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatAll
	RepeatOne
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatAll:
		return "All"
	case RepeatOne:
		return "One"
	default:
		return "Unknown"
	}
}

// Next returns the next mode in the cycle Off -> All -> One -> Off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// Direction selects which way Advance moves.
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrevious
)

// Position selects where Enqueue places a track.
type Position string

const (
	// PositionEnd appends to the main queue.
	PositionEnd Position = "end"
	// PositionNext appends to the up-next override list, which is
	// consumed before the main queue continues.
	PositionNext Position = "next"
)
