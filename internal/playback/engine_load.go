package playback

import (
	"context"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

// startLoadLocked cancels whatever is in flight and begins resolving
// and loading entry. Caller holds e.mu.
func (e *Engine) startLoadLocked(entry queue.Entry, autoplay bool) {
	e.cancelPendingLocked()

	e.playIntent = autoplay
	e.position = 0
	e.duration = 0
	e.buffered = 0
	e.stalled = false
	e.retryCount = 0
	e.currentURL = ""
	e.loadingID = entry.InstanceID
	e.setStateLocked(StateLoading)

	ctx, cancel := context.WithCancel(context.Background())
	e.resolveCancel = cancel
	go e.resolveEntry(ctx, entry)
}

// resolveEntry runs off the lock. The result is applied only if the
// entry is still the one being loaded when resolution finishes.
func (e *Engine) resolveEntry(ctx context.Context, entry queue.Entry) {
	res, err := e.res.Resolve(ctx, entry.InstanceID, entry.Track)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.loadingID != entry.InstanceID {
		// Superseded by a newer intent; drop the result.
		return
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		e.log.Warn("stream resolution failed",
			"track", entry.Track.Title,
			"track_id", entry.Track.ID,
			"error", err)
		e.failTrackLocked(&ResolveError{TrackID: entry.Track.ID, Title: entry.Track.Title, Err: err}, entry)
		return
	}

	e.currentURL = res.URL
	e.sink.Load(res.URL)
}

// failTrackLocked surfaces the failure and moves on to the next track.
// Consecutive failures are bounded so a dead catalog cannot keep the
// engine cycling forever.
func (e *Engine) failTrackLocked(err error, failed queue.Entry) {
	e.errorLocked(err, &failed)
	e.failStreak++
	e.cancelPendingLocked()
	e.currentURL = ""

	if e.failStreak >= e.failureLimit {
		e.log.Error("too many consecutive track failures, stopping",
			"failures", e.failStreak)
		e.setStateLocked(StateError)
		return
	}

	next := e.store.Advance(queue.DirectionNext, false)
	if next == nil {
		e.setStateLocked(StateError)
		return
	}
	autoplay := e.playIntent
	e.startLoadLocked(*next, autoplay)
	e.trackChangedLocked(&failed)
	e.queueChangedLocked()
}

// cancelPendingLocked aborts the in-flight resolution and any scheduled
// stream reload. Caller holds e.mu.
func (e *Engine) cancelPendingLocked() {
	if e.resolveCancel != nil {
		e.resolveCancel()
		e.resolveCancel = nil
	}
	if e.retryTimer != nil {
		e.retryTimer.Stop()
		e.retryTimer = nil
	}
	e.loadingID = ""
}

// stopLocked releases the stream and settles into the given state.
func (e *Engine) stopLocked(final State) {
	e.cancelPendingLocked()
	e.currentURL = ""
	e.playIntent = false
	e.position = 0
	e.duration = 0
	e.buffered = 0
	e.stalled = false
	e.sink.Stop()
	e.setStateLocked(final)
}

// recordDepartureLocked reports how long the departing track played.
// Fire and forget; a failed report never affects playback.
func (e *Engine) recordDepartureLocked() {
	if e.recorder == nil {
		return
	}
	cur := e.store.Current()
	if cur == nil || e.position <= 0 {
		return
	}
	trackID := cur.Track.ID
	played := e.position
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.recorder.RecordPlayEvent(ctx, trackID, e.sessionID, played); err != nil {
			e.log.Warn("record play event failed", "track_id", trackID, "error", err)
		}
	}()
}
