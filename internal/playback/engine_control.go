package playback

import (
	"context"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// Play starts or resumes playback. Calling it while already playing is
// a no-op; from idle it starts at the queue's current entry, or the
// first entry when there is none.
func (e *Engine) Play() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	switch e.state {
	case StatePlaying:
		// Idempotent.
	case StateReady, StatePaused:
		e.playIntent = true
		if err := e.sink.Play(context.Background()); err != nil {
			e.playRejectedLocked(err)
			return
		}
		e.setStateLocked(StatePlaying)
	case StateLoading:
		e.playIntent = true
	default:
		// Idle, Ended or Error: start from the queue.
		e.failStreak = 0
		if cur := e.store.Current(); cur != nil {
			e.startLoadLocked(*cur, true)
			return
		}
		next := e.store.Advance(queue.DirectionNext, true)
		if next == nil {
			return
		}
		e.startLoadLocked(*next, true)
		e.trackChangedLocked(nil)
		e.queueChangedLocked()
	}
}

// Pause suspends playback. Calling it while not playing is a no-op.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.playIntent = false
	if e.state != StatePlaying {
		return
	}
	e.sink.Pause()
	e.setStateLocked(StatePaused)
}

// Stop releases the stream and returns to idle. The queue and the
// current pointer survive, so a later Play starts the same entry over.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.recordDepartureLocked()
	e.stopLocked(StateIdle)
}

// Toggle plays when paused and pauses when playing.
func (e *Engine) Toggle() {
	e.mu.Lock()
	playing := e.state == StatePlaying
	e.mu.Unlock()
	if playing {
		e.Pause()
	} else {
		e.Play()
	}
}

// Next skips to the next entry. Skipping is user-initiated, so
// repeat-one does not replay the current track.
func (e *Engine) Next() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.recordDepartureLocked()
	e.failStreak = 0
	prev := e.store.Current()
	next := e.store.Advance(queue.DirectionNext, true)
	if next == nil {
		e.stopLocked(StateIdle)
		e.trackChangedLocked(prev)
		e.queueChangedLocked()
		return
	}
	e.startLoadLocked(*next, e.keepPlayingLocked())
	e.trackChangedLocked(prev)
	e.queueChangedLocked()
}

// Previous restarts the current track when playback is past the restart
// threshold, and goes back in history otherwise. With no history it
// restarts regardless.
func (e *Engine) Previous() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	if e.state.CanSeek() && e.position > e.prevThreshold {
		e.sink.Seek(0)
		e.position = 0
		e.positionChangedLocked()
		return
	}

	cur := e.store.Current()
	entry := e.store.Advance(queue.DirectionPrevious, true)
	if entry == nil {
		return
	}

	if cur != nil && entry.InstanceID == cur.InstanceID {
		// No history to pop; restart the current entry.
		if e.state.CanSeek() {
			e.sink.Seek(0)
			e.position = 0
			e.positionChangedLocked()
		} else if e.state == StateIdle || e.state == StateEnded || e.state == StateError {
			e.startLoadLocked(*entry, e.keepPlayingLocked())
		}
		return
	}

	e.recordDepartureLocked()
	e.failStreak = 0
	e.startLoadLocked(*entry, e.keepPlayingLocked())
	e.trackChangedLocked(cur)
	e.queueChangedLocked()
}

// SeekTo moves the play position, clamped to the track bounds. Ignored
// while no track is seekable.
func (e *Engine) SeekTo(pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || !e.state.CanSeek() {
		return
	}

	if pos < 0 {
		pos = 0
	}
	if e.duration > 0 && pos > e.duration {
		pos = e.duration
	}
	e.sink.Seek(pos)
	e.position = pos
	e.positionChangedLocked()
	if e.persist != nil {
		if cur := e.store.Current(); cur != nil {
			e.persist.SavePosition(cur.Track.ID, pos)
		}
	}
}

// SeekBy moves the play position relative to the current one.
func (e *Engine) SeekBy(delta time.Duration) {
	e.mu.Lock()
	pos := e.position + delta
	e.mu.Unlock()
	e.SeekTo(pos)
}

// SetVolume sets the output level, clamped to 0..1. Volume is
// independent of mute: changing it while muted does not unmute.
func (e *Engine) SetVolume(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	e.volume = level
	e.sink.SetVolume(level)
	e.volumeChangedLocked()
}

// AdjustVolume changes the level by delta.
func (e *Engine) AdjustVolume(delta float64) {
	e.mu.Lock()
	level := e.volume + delta
	e.mu.Unlock()
	e.SetVolume(level)
}

// ToggleMute flips the mute flag. The stored level survives, so
// unmuting restores the pre-mute volume exactly.
func (e *Engine) ToggleMute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.muted = !e.muted
	e.sink.SetMuted(e.muted)
	e.volumeChangedLocked()
}

// SetQueue replaces the queue and starts playing at startIndex.
func (e *Engine) SetQueue(tracks []catalog.Track, startIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	entries := make([]queue.Entry, len(tracks))
	for i, t := range tracks {
		entries[i] = queue.NewEntry(t, queue.OriginUser)
	}

	e.recordDepartureLocked()
	prev := e.store.Current()
	if err := e.store.SetQueue(entries, startIndex); err != nil {
		return err
	}
	e.failStreak = 0
	e.queueChangedLocked()

	cur := e.store.Current()
	if cur == nil {
		e.stopLocked(StateIdle)
		e.trackChangedLocked(prev)
		return nil
	}
	e.startLoadLocked(*cur, true)
	e.trackChangedLocked(prev)
	return nil
}

// Enqueue adds a track to the end of the queue or to the up-next list.
func (e *Engine) Enqueue(track catalog.Track, pos queue.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	if err := e.store.Enqueue(queue.NewEntry(track, queue.OriginUser), pos); err != nil {
		return err
	}
	e.queueChangedLocked()
	return nil
}

// RemoveEntry removes the entry with the given instance id. Removing
// the playing entry moves playback to the entry that slid into its
// place, or stops when the queue emptied.
func (e *Engine) RemoveEntry(instanceID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	cur := e.store.Current()
	if err := e.store.Remove(instanceID); err != nil {
		return err
	}
	e.queueChangedLocked()

	if cur == nil || cur.InstanceID != instanceID {
		return nil
	}
	next := e.store.Current()
	if next == nil {
		e.stopLocked(StateIdle)
		e.trackChangedLocked(cur)
		return nil
	}
	e.startLoadLocked(*next, e.keepPlayingLocked())
	e.trackChangedLocked(cur)
	return nil
}

// Reorder moves the entry at fromIndex to toIndex. The playing entry
// keeps playing wherever it lands.
func (e *Engine) Reorder(fromIndex, toIndex int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	if err := e.store.Reorder(fromIndex, toIndex); err != nil {
		return err
	}
	e.queueChangedLocked()
	return nil
}

// ClearQueue drops the queue, up-next list and history, and stops
// playback. Repeat and shuffle policy survive.
func (e *Engine) ClearQueue() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.recordDepartureLocked()
	prev := e.store.Current()
	e.store.Clear()
	e.stopLocked(StateIdle)
	e.trackChangedLocked(prev)
	e.queueChangedLocked()
}

// JumpTo starts playing the queue entry at index.
func (e *Engine) JumpTo(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	e.recordDepartureLocked()
	prev := e.store.Current()
	entry, err := e.store.JumpTo(index)
	if err != nil {
		return err
	}
	e.failStreak = 0
	e.startLoadLocked(*entry, true)
	e.trackChangedLocked(prev)
	e.queueChangedLocked()
	return nil
}

// ToggleShuffle flips shuffle mode. Enabling draws a fresh shuffle
// order; disabling returns to queue order without restoring anything.
func (e *Engine) ToggleShuffle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.ToggleShuffle()
	e.modeChangedLocked()
}

// SetShuffle sets shuffle mode explicitly.
func (e *Engine) SetShuffle(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	if e.store.Shuffle() == enabled {
		return
	}
	e.store.SetShuffle(enabled)
	e.modeChangedLocked()
}

// SetRepeat sets the repeat mode.
func (e *Engine) SetRepeat(mode queue.RepeatMode) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.SetRepeat(mode)
	e.modeChangedLocked()
}

// CycleRepeat advances repeat mode through Off, All, One.
func (e *Engine) CycleRepeat() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.SetRepeat(e.store.Repeat().Next())
	e.modeChangedLocked()
}

// DismissError clears the surfaced error. An engine stuck in the error
// state returns to idle.
func (e *Engine) DismissError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.lastErr = nil
	e.failStreak = 0
	if e.state == StateError {
		e.setStateLocked(StateIdle)
	}
}

// Restore reinstates a persisted queue without starting playback.
func (e *Engine) Restore(entries, upNext []queue.Entry, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}

	if err := e.store.SetQueue(entries, index); err != nil {
		return err
	}
	for _, entry := range upNext {
		if err := e.store.Enqueue(entry, queue.PositionNext); err != nil {
			return err
		}
	}
	e.queueChangedLocked()
	e.trackChangedLocked(nil)
	return nil
}

// ResumeAt records a restored play position for the entry with the
// given instance id. The seek happens when that entry next becomes
// ready; loading any other entry first discards it.
func (e *Engine) ResumeAt(instanceID string, pos time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || instanceID == "" || pos <= 0 {
		return
	}
	e.resumeID = instanceID
	e.resumePos = pos
}

// RestoreModes reinstates persisted repeat and shuffle policy.
func (e *Engine) RestoreModes(repeat queue.RepeatMode, shuffle bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.store.SetRepeat(repeat)
	e.store.SetShuffle(shuffle)
	e.modeChangedLocked()
}

// keepPlayingLocked reports whether a track change should auto-start
// the new track: it should whenever playback was running or about to.
func (e *Engine) keepPlayingLocked() bool {
	return e.playIntent || e.state == StatePlaying
}
