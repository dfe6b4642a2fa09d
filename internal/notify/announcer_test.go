package notify

import (
	"log/slog"
	"testing"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

type recordingNotifier struct {
	sent   []Notification
	closed []uint32
	nextID uint32
}

func (r *recordingNotifier) Notify(n Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	if n.ReplacesID != 0 {
		return n.ReplacesID, nil
	}
	r.nextID++
	return r.nextID, nil
}

func (r *recordingNotifier) Close(id uint32) error {
	r.closed = append(r.closed, id)
	return nil
}

func entryFor(title, artist string) *queue.Entry {
	e := queue.NewEntry(catalog.Track{ID: title, Title: title, Artist: artist}, queue.OriginUser)
	return &e
}

func TestAnnouncer_ReplacesPreviousNotification(t *testing.T) {
	r := &recordingNotifier{}
	a := NewAnnouncer(r, slog.New(slog.DiscardHandler))

	a.announce(playback.TrackChange{Current: entryFor("One", "A")})
	a.announce(playback.TrackChange{Current: entryFor("Two", "B")})

	if len(r.sent) != 2 {
		t.Fatalf("sent %d notifications, want 2", len(r.sent))
	}
	if r.sent[0].ReplacesID != 0 {
		t.Errorf("first notification ReplacesID = %d, want 0", r.sent[0].ReplacesID)
	}
	if r.sent[1].ReplacesID == 0 {
		t.Error("second notification did not replace the first")
	}
	if r.sent[1].Title != "Two" || r.sent[1].Body != "B" {
		t.Errorf("notification = %q / %q, want Two / B", r.sent[1].Title, r.sent[1].Body)
	}
}

func TestAnnouncer_ClearsOnPlaybackStop(t *testing.T) {
	r := &recordingNotifier{}
	a := NewAnnouncer(r, slog.New(slog.DiscardHandler))

	a.announce(playback.TrackChange{Current: entryFor("One", "A")})
	a.announce(playback.TrackChange{Current: nil})

	if len(r.closed) != 1 {
		t.Fatalf("closed %d notifications, want 1", len(r.closed))
	}
	if a.lastID != 0 {
		t.Errorf("lastID = %d after stop, want 0", a.lastID)
	}
}
