package app

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/audio"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/resolver"
)

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, instanceID string, track catalog.Track) (resolver.Resolution, error) {
	return resolver.Resolution{
		InstanceID: instanceID,
		TrackID:    track.ID,
		URL:        "https://cdn.test/" + track.ID,
	}, nil
}

func newTestModel(t *testing.T) (Model, *playback.Engine) {
	t.Helper()
	eng := playback.New(queue.NewStore(0, 0), stubResolver{}, audio.NewMock(), playback.Options{
		Logger: slog.New(slog.DiscardHandler),
	})
	t.Cleanup(func() { eng.Close() })

	m := New(eng)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model), eng
}

func keyMsg(key string) tea.KeyMsg {
	if key == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestQuitKeyStopsProgram(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit key produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("quit key produced %T, want tea.QuitMsg", cmd())
	}
}

func TestEngineShutdownStopsProgram(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(engineClosedMsg{})
	if cmd == nil {
		t.Fatal("engine shutdown produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("engine shutdown produced %T, want tea.QuitMsg", cmd())
	}
}

func TestSnapshotRefreshesQueuePanel(t *testing.T) {
	m, eng := newTestModel(t)
	if err := eng.SetQueue([]catalog.Track{
		{ID: "t1", Title: "Night Drive", Artist: "The Echoes", Duration: 3 * time.Minute},
	}, 0); err != nil {
		t.Fatal(err)
	}

	updated, cmd := m.Update(snapshotMsg{snap: eng.Snapshot()})
	if cmd == nil {
		t.Error("snapshot update did not re-arm the event listener")
	}
	if view := updated.(Model).View(); !strings.Contains(view, "Night Drive") {
		t.Errorf("view missing queued track:\n%s", view)
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	if !m.showHelp {
		t.Fatal("help not shown after ?")
	}
	updated, _ = m.Update(keyMsg("?"))
	if updated.(Model).showHelp {
		t.Error("help still shown after second ?")
	}
}

func TestPlayerDisplayToggle(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(keyMsg("v"))
	if updated.(Model).barMode != m.barMode.Toggle() {
		t.Error("player display mode did not flip")
	}
}

func TestCursorKeysMoveSelection(t *testing.T) {
	m, eng := newTestModel(t)
	if err := eng.SetQueue([]catalog.Track{
		{ID: "t1", Title: "One"},
		{ID: "t2", Title: "Two"},
	}, 0); err != nil {
		t.Fatal(err)
	}
	updated, _ := m.Update(snapshotMsg{snap: eng.Snapshot()})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("j"))
	m = updated.(Model)
	if _, idx := m.queue.SelectedEntry(); idx != 1 {
		t.Errorf("selection at %d after j, want 1", idx)
	}

	updated, _ = m.Update(keyMsg("k"))
	m = updated.(Model)
	if _, idx := m.queue.SelectedEntry(); idx != 0 {
		t.Errorf("selection at %d after k, want 0", idx)
	}
}
