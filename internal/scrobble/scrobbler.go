// Package scrobble reports listens to Last.fm. It subscribes to the
// playback engine and submits a "now playing" update when a track
// starts and a scrobble once enough of it has played. Everything is
// best effort: failures are logged and playback never notices.
package scrobble

import (
	"log/slog"
	"time"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
)

const (
	// minTrackLength: Last.fm ignores scrobbles for very short tracks.
	minTrackLength = 30 * time.Second
	// scrobbleAfter: absolute play time that qualifies a scrobble even
	// for long tracks.
	scrobbleAfter = 4 * time.Minute
)

type submitter interface {
	nowPlaying(t catalog.Track) error
	scrobble(t catalog.Track, startedAt time.Time) error
}

// Scrobbler consumes playback events and submits listens.
type Scrobbler struct {
	sub submitter
	log *slog.Logger

	current   *catalog.Track
	startedAt time.Time
	played    time.Duration
	sent      bool
}

// New creates a scrobbler for an authenticated Last.fm session.
func New(apiKey, apiSecret, sessionKey string, log *slog.Logger) *Scrobbler {
	if log == nil {
		log = slog.Default()
	}
	api := lastfm.New(apiKey, apiSecret)
	api.SetSession(sessionKey)
	return &Scrobbler{sub: &lastfmSubmitter{api: api}, log: log}
}

// Run consumes engine events until the subscription closes. Call it in
// its own goroutine.
func (s *Scrobbler) Run(sub *playback.Subscription) {
	for {
		select {
		case <-sub.Done:
			s.flush()
			return
		case ev := <-sub.TrackChanged:
			s.handleTrack(ev)
		case ev := <-sub.PositionChanged:
			s.handlePosition(ev)
		}
	}
}

func (s *Scrobbler) handleTrack(ev playback.TrackChange) {
	s.flush()

	if ev.Current == nil {
		s.current = nil
		return
	}
	track := ev.Current.Track
	s.current = &track
	s.startedAt = time.Now()
	s.played = 0
	s.sent = false

	go func() {
		if err := s.sub.nowPlaying(track); err != nil {
			s.log.Warn("now playing update failed", "track", track.Title, "error", err)
		}
	}()
}

func (s *Scrobbler) handlePosition(ev playback.PositionChange) {
	if s.current == nil || s.sent {
		return
	}
	s.played = ev.Position
	if qualifies(s.current.Duration, s.played) {
		s.submit()
	}
}

// flush submits the departing track if it qualified but the threshold
// check never fired (for example a skip right after the halfway point).
func (s *Scrobbler) flush() {
	if s.current == nil || s.sent {
		return
	}
	if qualifies(s.current.Duration, s.played) {
		s.submit()
	}
}

func (s *Scrobbler) submit() {
	track := *s.current
	startedAt := s.startedAt
	s.sent = true
	go func() {
		if err := s.sub.scrobble(track, startedAt); err != nil {
			s.log.Warn("scrobble failed", "track", track.Title, "error", err)
		}
	}()
}

// qualifies implements the Last.fm rule: the track is at least 30
// seconds long, and at least half of it (or 4 minutes) has played.
func qualifies(duration, played time.Duration) bool {
	if duration < minTrackLength {
		return false
	}
	return played >= duration/2 || played >= scrobbleAfter
}

type lastfmSubmitter struct {
	api *lastfm.Api
}

func (l *lastfmSubmitter) nowPlaying(t catalog.Track) error {
	params := lastfm.P{
		"artist": t.Artist,
		"track":  t.Title,
	}
	if t.Duration > 0 {
		params["duration"] = int(t.Duration.Seconds())
	}
	_, err := l.api.Track.UpdateNowPlaying(params)
	return err
}

func (l *lastfmSubmitter) scrobble(t catalog.Track, startedAt time.Time) error {
	params := lastfm.P{
		"artist":    t.Artist,
		"track":     t.Title,
		"timestamp": startedAt.Unix(),
	}
	if t.Duration > 0 {
		params["duration"] = int(t.Duration.Seconds())
	}
	_, err := l.api.Track.Scrobble(params)
	return err
}
