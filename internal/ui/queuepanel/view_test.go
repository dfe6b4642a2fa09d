package queuepanel

import (
	"strings"
	"testing"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

func snapshotWith(titles ...string) playback.Snapshot {
	entries := make([]queue.Entry, len(titles))
	for i, title := range titles {
		entries[i] = queue.NewEntry(catalog.Track{
			ID:       title,
			Title:    title,
			Artist:   "Artist " + title,
			Duration: 3 * time.Minute,
		}, queue.OriginUser)
	}
	s := playback.Snapshot{Entries: entries, CurrentIndex: -1}
	if len(entries) > 0 {
		s.CurrentIndex = 0
		s.Current = &entries[0]
	}
	return s
}

func testPanel(s playback.Snapshot) *Model {
	m := New()
	m.SetSize(80, 12)
	m.SetSnapshot(s)
	return m
}

func TestView_ShowsHeaderAndTracks(t *testing.T) {
	m := testPanel(snapshotWith("Alpha", "Beta", "Gamma"))
	out := m.View()

	if !strings.Contains(out, "Queue (1/3)") {
		t.Errorf("header missing queue position:\n%s", out)
	}
	if !strings.Contains(out, "9 min") {
		t.Errorf("header missing total duration:\n%s", out)
	}
	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		if !strings.Contains(out, title) {
			t.Errorf("view missing track %q", title)
		}
	}
}

func TestView_ShowsRelativeAddedTime(t *testing.T) {
	s := snapshotWith("Alpha")
	s.Entries[0].AddedAt = time.Now().Add(-10 * time.Minute)
	out := testPanel(s).View()
	if !strings.Contains(out, "minutes ago") {
		t.Errorf("view missing relative added time:\n%s", out)
	}
}

func TestView_ShowsUpNextOverride(t *testing.T) {
	s := snapshotWith("Alpha", "Beta")
	s.UpNext = []queue.Entry{
		queue.NewEntry(catalog.Track{ID: "x", Title: "Interlude", Artist: "Guest"}, queue.OriginUser),
	}
	out := testPanel(s).View()
	if !strings.Contains(out, "Interlude") {
		t.Errorf("view missing up-next entry:\n%s", out)
	}
}

func TestMoveCursorAndSelectedEntry(t *testing.T) {
	m := testPanel(snapshotWith("Alpha", "Beta", "Gamma"))

	entry, idx := m.SelectedEntry()
	if entry == nil || idx != 0 || entry.Track.Title != "Alpha" {
		t.Fatalf("initial selection = %v at %d, want Alpha at 0", entry, idx)
	}

	m.MoveCursor(2)
	entry, idx = m.SelectedEntry()
	if entry == nil || idx != 2 || entry.Track.Title != "Gamma" {
		t.Errorf("selection after move = %v at %d, want Gamma at 2", entry, idx)
	}

	// Clamped at the end of the list.
	m.MoveCursor(5)
	if _, idx = m.SelectedEntry(); idx != 2 {
		t.Errorf("cursor ran past the list end: %d", idx)
	}
}

func TestSelectedEntry_EmptyQueue(t *testing.T) {
	m := testPanel(snapshotWith())
	if entry, idx := m.SelectedEntry(); entry != nil || idx != -1 {
		t.Errorf("empty queue selection = %v at %d, want nil at -1", entry, idx)
	}
}

func TestSetSnapshot_ClampsCursorAfterRemoval(t *testing.T) {
	m := testPanel(snapshotWith("Alpha", "Beta", "Gamma"))
	m.MoveCursor(2)

	m.SetSnapshot(snapshotWith("Alpha"))
	entry, idx := m.SelectedEntry()
	if entry == nil || idx != 0 {
		t.Errorf("cursor not clamped after shrink: %v at %d", entry, idx)
	}
}

func TestCursorToCurrent(t *testing.T) {
	s := snapshotWith("Alpha", "Beta", "Gamma")
	s.CurrentIndex = 2
	m := testPanel(s)

	m.CursorToCurrent()
	if _, idx := m.SelectedEntry(); idx != 2 {
		t.Errorf("cursor at %d after CursorToCurrent, want 2", idx)
	}
}
