package queue

import (
	"errors"
	"slices"
)

const (
	// DefaultMaxEntries bounds the queue so it cannot grow without limit.
	DefaultMaxEntries = 1000
	// DefaultHistoryMax bounds the play history.
	DefaultHistoryMax = 100
)

var (
	// ErrQueueFull is returned when an insert would exceed the queue bound.
	ErrQueueFull = errors.New("queue is full")
	// ErrInvalidIndex is returned for out-of-range queue indices.
	ErrInvalidIndex = errors.New("invalid queue index")
	// ErrNotFound is returned when no entry has the given instance id.
	ErrNotFound = errors.New("entry not found in queue")
)

// Store holds the playback order state: the main queue, the up-next
// override list, play history, the current pointer, and shuffle/repeat
// policy. It is a plain data structure; the playback engine owns it and
// serializes access, so every mutation is atomic with respect to a
// single state snapshot.
type Store struct {
	entries      []Entry
	upNext       []Entry
	history      []Entry // most-recent-first
	shuffleOrder []int   // permutation of entry indices, valid at all times
	currentIndex int     // -1 if no current pointer
	current      *Entry  // cached; may be an up-next entry not present in entries
	repeat       RepeatMode
	shuffle      bool
	maxEntries   int
	historyMax   int
}

// NewStore creates an empty store. Non-positive bounds fall back to the
// defaults.
func NewStore(maxEntries, historyMax int) *Store {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if historyMax <= 0 {
		historyMax = DefaultHistoryMax
	}
	return &Store{
		currentIndex: -1,
		maxEntries:   maxEntries,
		historyMax:   historyMax,
	}
}

// SetQueue replaces the queue contents and points playback at startIndex.
// A startIndex out of range leaves the store with no current entry.
func (s *Store) SetQueue(entries []Entry, startIndex int) error {
	if len(entries) > s.maxEntries {
		return ErrQueueFull
	}
	s.entries = slices.Clone(entries)
	if startIndex >= 0 && startIndex < len(s.entries) {
		s.currentIndex = startIndex
		e := s.entries[startIndex]
		s.current = &e
	} else {
		s.currentIndex = -1
		s.current = nil
	}
	s.reshuffle()
	return nil
}

// Enqueue adds a track either to the end of the main queue or to the
// up-next override list. Inserts that would exceed the queue bound are
// rejected, never silently truncated.
func (s *Store) Enqueue(entry Entry, pos Position) error {
	if len(s.entries)+len(s.upNext) >= s.maxEntries {
		return ErrQueueFull
	}
	switch pos {
	case PositionNext:
		s.upNext = append(s.upNext, entry)
	default:
		s.entries = append(s.entries, entry)
		s.reshuffle()
	}
	return nil
}

// Remove deletes the entry with the given instance id from the queue or
// the up-next list, keeping the current pointer on the logically same
// position.
func (s *Store) Remove(instanceID string) error {
	if i := slices.IndexFunc(s.upNext, func(e Entry) bool { return e.InstanceID == instanceID }); i >= 0 {
		s.upNext = slices.Delete(s.upNext, i, i+1)
		return nil
	}

	idx := s.indexOf(instanceID)
	if idx < 0 {
		return ErrNotFound
	}

	wasCurrent := s.current != nil && s.current.InstanceID == instanceID
	s.entries = slices.Delete(s.entries, idx, idx+1)

	switch {
	case s.currentIndex > idx:
		s.currentIndex--
	case s.currentIndex == idx:
		// Pointer stays in place, now naming the next entry. Clamp at
		// the tail; an emptied queue drops the pointer entirely.
		if s.currentIndex >= len(s.entries) {
			s.currentIndex = len(s.entries) - 1
		}
	}

	if wasCurrent {
		if s.currentIndex >= 0 {
			e := s.entries[s.currentIndex]
			s.current = &e
		} else {
			s.current = nil
		}
	}
	s.reshuffle()
	return nil
}

// Reorder moves the entry at fromIndex to toIndex, translating the
// current pointer so the logically current entry never changes.
func (s *Store) Reorder(fromIndex, toIndex int) error {
	if fromIndex < 0 || fromIndex >= len(s.entries) {
		return ErrInvalidIndex
	}
	if toIndex < 0 || toIndex >= len(s.entries) {
		return ErrInvalidIndex
	}
	if fromIndex == toIndex {
		return nil
	}

	entry := s.entries[fromIndex]
	s.entries = slices.Delete(s.entries, fromIndex, fromIndex+1)
	s.entries = slices.Insert(s.entries, toIndex, entry)

	if s.currentIndex >= 0 {
		switch {
		case fromIndex == s.currentIndex:
			s.currentIndex = toIndex
		case fromIndex < s.currentIndex && toIndex >= s.currentIndex:
			s.currentIndex--
		case fromIndex > s.currentIndex && toIndex <= s.currentIndex:
			s.currentIndex++
		}
	}
	s.reshuffle()
	return nil
}

// Advance moves the current pointer and returns the entry that should
// play, or nil when there is nothing to play.
//
// Next selection order: up-next head, repeat-one replay (unless the
// advance was user-initiated), next entry in shuffled or linear order,
// wrap when repeating all, otherwise stop.
func (s *Store) Advance(dir Direction, manual bool) *Entry {
	if dir == DirectionPrevious {
		return s.previous()
	}

	if len(s.upNext) > 0 {
		e := s.upNext[0]
		s.upNext = slices.Delete(s.upNext, 0, 1)
		s.pushHistory()
		// The queue pointer does not move while an override plays.
		s.current = &e
		return s.currentCopy()
	}

	if s.repeat == RepeatOne && !manual && s.current != nil {
		return s.currentCopy()
	}

	next := s.nextIndex()
	if next < 0 && s.repeat == RepeatAll && len(s.entries) > 0 {
		next = s.firstIndex()
	}
	if next < 0 {
		s.pushHistory()
		s.current = nil
		s.currentIndex = -1
		return nil
	}
	s.moveTo(next)
	return s.currentCopy()
}

// previous pops the most recent history entry. With no history it
// returns the current entry so the caller restarts it. (The caller also
// restarts instead of rewinding when playback is past a small elapsed
// threshold; that decision needs transport state the store does not
// have.)
func (s *Store) previous() *Entry {
	if len(s.history) == 0 {
		return s.currentCopy()
	}
	e := s.history[0]
	s.history = s.history[1:]
	s.current = &e
	if idx := s.indexOf(e.InstanceID); idx >= 0 {
		s.currentIndex = idx
	}
	return s.currentCopy()
}

// JumpTo points playback at the queue entry at index.
func (s *Store) JumpTo(index int) (*Entry, error) {
	if index < 0 || index >= len(s.entries) {
		return nil, ErrInvalidIndex
	}
	s.moveTo(index)
	return s.currentCopy(), nil
}

// ToggleShuffle flips shuffle mode. Enabling draws a fresh permutation;
// disabling simply switches back to linear order, the stored queue
// order is never touched.
func (s *Store) ToggleShuffle() bool {
	s.shuffle = !s.shuffle
	if s.shuffle {
		s.reshuffle()
	}
	return s.shuffle
}

// SetShuffle sets shuffle mode explicitly.
func (s *Store) SetShuffle(enabled bool) {
	if s.shuffle == enabled {
		return
	}
	s.ToggleShuffle()
}

// Shuffle reports whether shuffle is enabled.
func (s *Store) Shuffle() bool { return s.shuffle }

// SetRepeat sets the repeat mode.
func (s *Store) SetRepeat(mode RepeatMode) { s.repeat = mode }

// Repeat returns the repeat mode.
func (s *Store) Repeat() RepeatMode { return s.repeat }

// Clear drops the queue, the up-next list, the history, and the current
// pointer. Shuffle and repeat policy survive.
func (s *Store) Clear() {
	s.entries = nil
	s.upNext = nil
	s.history = nil
	s.shuffleOrder = nil
	s.currentIndex = -1
	s.current = nil
}

// Current returns a copy of the current entry, or nil.
func (s *Store) Current() *Entry { return s.currentCopy() }

// CurrentIndex returns the queue pointer (-1 if none).
func (s *Store) CurrentIndex() int { return s.currentIndex }

// Entries returns a copy of the main queue.
func (s *Store) Entries() []Entry { return slices.Clone(s.entries) }

// UpNext returns a copy of the up-next override list.
func (s *Store) UpNext() []Entry { return slices.Clone(s.upNext) }

// History returns a copy of the play history, most recent first.
func (s *Store) History() []Entry { return slices.Clone(s.history) }

// ShuffleOrder returns a copy of the shuffle permutation.
func (s *Store) ShuffleOrder() []int { return slices.Clone(s.shuffleOrder) }

// Len returns the number of entries in the main queue.
func (s *Store) Len() int { return len(s.entries) }

// IsEmpty reports whether both the queue and the up-next list are empty.
func (s *Store) IsEmpty() bool { return len(s.entries) == 0 && len(s.upNext) == 0 }

// HasNext reports whether Advance(DirectionNext) would yield an entry.
func (s *Store) HasNext() bool {
	if len(s.upNext) > 0 {
		return true
	}
	if s.repeat == RepeatAll && len(s.entries) > 0 {
		return true
	}
	return s.nextIndex() >= 0
}

// --- internals ---

func (s *Store) indexOf(instanceID string) int {
	return slices.IndexFunc(s.entries, func(e Entry) bool { return e.InstanceID == instanceID })
}

func (s *Store) reshuffle() {
	s.shuffleOrder = permutation(len(s.entries))
}

func (s *Store) moveTo(idx int) {
	s.pushHistory()
	s.currentIndex = idx
	e := s.entries[idx]
	s.current = &e
}

func (s *Store) pushHistory() {
	if s.current == nil {
		return
	}
	s.history = append([]Entry{*s.current}, s.history...)
	if len(s.history) > s.historyMax {
		s.history = s.history[:s.historyMax]
	}
}

func (s *Store) currentCopy() *Entry {
	if s.current == nil {
		return nil
	}
	e := *s.current
	return &e
}

// nextIndex returns the index after the current pointer in the active
// order, or -1 at the end. With no current pointer it returns the first
// index so an idle queue starts from the top.
func (s *Store) nextIndex() int {
	if len(s.entries) == 0 {
		return -1
	}
	if s.currentIndex < 0 {
		return s.firstIndex()
	}
	if !s.shuffle {
		if s.currentIndex+1 < len(s.entries) {
			return s.currentIndex + 1
		}
		return -1
	}
	pos := slices.Index(s.shuffleOrder, s.currentIndex)
	if pos >= 0 && pos+1 < len(s.shuffleOrder) {
		return s.shuffleOrder[pos+1]
	}
	return -1
}

func (s *Store) firstIndex() int {
	if len(s.entries) == 0 {
		return -1
	}
	if s.shuffle && len(s.shuffleOrder) > 0 {
		return s.shuffleOrder[0]
	}
	return 0
}
