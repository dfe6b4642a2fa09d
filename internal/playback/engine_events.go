package playback

import (
	"context"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/audio"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

func (e *Engine) consumeEvents() {
	for {
		select {
		case <-e.done:
			return
		case ev := <-e.sink.Events():
			e.handleSinkEvent(ev)
		}
	}
}

func (e *Engine) handleSinkEvent(ev audio.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if ev.URL != e.currentURL || e.currentURL == "" {
		// Event from a stream that has already been replaced.
		return
	}

	switch ev.Kind {
	case audio.EventReady:
		e.handleReadyLocked(ev)
	case audio.EventProgress:
		e.position = ev.Position
		e.buffered = ev.Buffered
		e.positionChangedLocked()
		if e.persist != nil {
			if cur := e.store.Current(); cur != nil {
				e.persist.SavePosition(cur.Track.ID, e.position)
			}
		}
	case audio.EventStalled:
		e.stalled = true
		e.positionChangedLocked()
	case audio.EventResumed:
		e.stalled = false
		e.positionChangedLocked()
	case audio.EventEnded:
		e.handleEndedLocked()
	case audio.EventError:
		e.handleStreamErrorLocked(ev)
	}
}

func (e *Engine) handleReadyLocked(ev audio.Event) {
	e.duration = ev.Duration
	e.position = 0
	e.retryCount = 0
	e.failStreak = 0
	e.loadingID = ""
	if e.resolveCancel != nil {
		e.resolveCancel()
		e.resolveCancel = nil
	}
	e.setStateLocked(StateReady)
	e.applyResumeLocked()

	if !e.playIntent {
		return
	}
	if err := e.sink.Play(context.Background()); err != nil {
		e.playRejectedLocked(err)
		return
	}
	e.setStateLocked(StatePlaying)
}

// playRejectedLocked settles into paused with the track still loaded
// when the sink refuses to start output. A rejection is not a transport
// failure: the stream is intact, nothing is retried, and the queue does
// not advance.
func (e *Engine) playRejectedLocked(err error) {
	e.playIntent = false
	cur := e.store.Current()
	if cur != nil {
		err = &PlayRejectedError{TrackID: cur.Track.ID, Title: cur.Track.Title, Err: err}
	}
	e.log.Warn("playback start rejected", "error", err)
	e.errorLocked(err, cur)
	e.setStateLocked(StatePaused)
}

// applyResumeLocked seeks to a restored position the first time the
// restored entry becomes ready. Whatever entry loads first consumes the
// pending resume, so a stale position never applies to another track.
func (e *Engine) applyResumeLocked() {
	if e.resumeID == "" {
		return
	}
	id, pos := e.resumeID, e.resumePos
	e.resumeID = ""
	e.resumePos = 0

	cur := e.store.Current()
	if cur == nil || cur.InstanceID != id {
		return
	}
	if pos <= 0 || (e.duration > 0 && pos >= e.duration) {
		return
	}
	e.sink.Seek(pos)
	e.position = pos
	e.positionChangedLocked()
}

// handleEndedLocked advances after natural end of media. Repeat-one
// replays the same entry; the advance is not user-initiated.
func (e *Engine) handleEndedLocked() {
	e.recordDepartureLocked()
	prev := e.store.Current()
	e.setStateLocked(StateEnded)

	next := e.store.Advance(queue.DirectionNext, false)
	if next == nil {
		e.stopLocked(StateIdle)
		e.trackChangedLocked(prev)
		e.queueChangedLocked()
		return
	}
	e.startLoadLocked(*next, true)
	e.trackChangedLocked(prev)
	e.queueChangedLocked()
}

// handleStreamErrorLocked reloads the same URL a bounded number of
// times with a fixed delay, then declares the track failed. The final
// attempt goes back through the resolver, since a signed URL may have
// expired mid-stream.
func (e *Engine) handleStreamErrorLocked(ev audio.Event) {
	cur := e.store.Current()
	if cur == nil {
		e.stopLocked(StateIdle)
		return
	}

	if e.retryCount >= e.transportAttempts {
		e.failTrackLocked(&TransportError{TrackID: cur.Track.ID, Title: cur.Track.Title, Err: ev.Err}, *cur)
		return
	}

	e.retryCount++
	e.setStateLocked(StateLoading)
	e.log.Warn("stream failed, retrying",
		"track", cur.Track.Title,
		"attempt", e.retryCount,
		"error", ev.Err)

	url := ev.URL
	entry := *cur
	reresolve := e.retryCount >= e.transportAttempts
	e.retryTimer = time.AfterFunc(e.transportDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if e.closed || e.currentURL != url {
			return
		}
		if reresolve {
			e.currentURL = ""
			e.loadingID = entry.InstanceID
			ctx, cancel := context.WithCancel(context.Background())
			e.resolveCancel = cancel
			go e.resolveEntry(ctx, entry)
			return
		}
		e.sink.Load(url)
	})
}
