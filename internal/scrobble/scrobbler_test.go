package scrobble

import (
	"log/slog"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

type fakeSubmitter struct {
	mu         sync.Mutex
	playing []string
	scrobbled  []string
}

func (f *fakeSubmitter) nowPlaying(t catalog.Track) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = append(f.playing, t.ID)
	return nil
}

func (f *fakeSubmitter) scrobble(t catalog.Track, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scrobbled = append(f.scrobbled, t.ID)
	return nil
}

func (f *fakeSubmitter) scrobbles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scrobbled...)
}

func testScrobbler(sub submitter) *Scrobbler {
	return &Scrobbler{sub: sub, log: slog.New(slog.DiscardHandler)}
}

func entryFor(id string, duration time.Duration) *queue.Entry {
	e := queue.NewEntry(catalog.Track{ID: id, Title: id, Artist: "A", Duration: duration}, queue.OriginUser)
	return &e
}

func TestQualifies(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		played   time.Duration
		want     bool
	}{
		{"half of a normal track", 4 * time.Minute, 2 * time.Minute, true},
		{"just under half", 4 * time.Minute, 119 * time.Second, false},
		{"four minutes of a long track", 20 * time.Minute, 4 * time.Minute, true},
		{"short track never qualifies", 20 * time.Second, 20 * time.Second, false},
		{"nothing played", 4 * time.Minute, 0, false},
	}
	for _, tt := range tests {
		if got := qualifies(tt.duration, tt.played); got != tt.want {
			t.Errorf("%s: qualifies(%v, %v) = %v, want %v", tt.name, tt.duration, tt.played, got, tt.want)
		}
	}
}

func TestScrobbler_NowPlayingOnTrackChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &fakeSubmitter{}
		s := testScrobbler(f)

		s.handleTrack(playback.TrackChange{Current: entryFor("t1", 3 * time.Minute)})
		synctest.Wait()

		f.mu.Lock()
		defer f.mu.Unlock()
		if len(f.playing) != 1 || f.playing[0] != "t1" {
			t.Errorf("now playing = %v, want [t1]", f.playing)
		}
	})
}

func TestScrobbler_ScrobblesAtHalfway(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &fakeSubmitter{}
		s := testScrobbler(f)

		s.handleTrack(playback.TrackChange{Current: entryFor("t1", 4 * time.Minute)})
		s.handlePosition(playback.PositionChange{Position: time.Minute})
		synctest.Wait()
		if got := f.scrobbles(); len(got) != 0 {
			t.Fatalf("scrobbled = %v before halfway, want none", got)
		}

		s.handlePosition(playback.PositionChange{Position: 2 * time.Minute})
		synctest.Wait()
		if got := f.scrobbles(); len(got) != 1 || got[0] != "t1" {
			t.Fatalf("scrobbled = %v, want [t1]", got)
		}

		// Further progress must not double-submit.
		s.handlePosition(playback.PositionChange{Position: 3 * time.Minute})
		synctest.Wait()
		if got := f.scrobbles(); len(got) != 1 {
			t.Errorf("scrobbled = %v, want exactly one", got)
		}
	})
}

func TestScrobbler_FlushOnDeparture(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &fakeSubmitter{}
		s := testScrobbler(f)

		// Played past halfway, but skip before the next position tick.
		s.handleTrack(playback.TrackChange{Current: entryFor("t1", 4 * time.Minute)})
		s.played = 130 * time.Second
		s.handleTrack(playback.TrackChange{Current: entryFor("t2", 3 * time.Minute)})
		synctest.Wait()

		if got := f.scrobbles(); len(got) != 1 || got[0] != "t1" {
			t.Errorf("scrobbled = %v, want flushed [t1]", got)
		}
	})
}

func TestScrobbler_SkipEarlyDoesNotScrobble(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := &fakeSubmitter{}
		s := testScrobbler(f)

		s.handleTrack(playback.TrackChange{Current: entryFor("t1", 4 * time.Minute)})
		s.handlePosition(playback.PositionChange{Position: 10 * time.Second})
		s.handleTrack(playback.TrackChange{Current: nil})
		synctest.Wait()

		if got := f.scrobbles(); len(got) != 0 {
			t.Errorf("scrobbled = %v, want none for an early skip", got)
		}
	})
}
