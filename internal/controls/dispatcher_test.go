package controls

import (
	"testing"
	"time"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/catalog"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
)

func catalogTrack(id string) catalog.Track {
	return catalog.Track{ID: id, Title: "Track " + id, Source: catalog.SourceRef("src-" + id)}
}

type fakePlayer struct {
	calls   []string
	seeks   []time.Duration
	volumes []float64
	removed []string
	moves   [][2]int
	jumps   []int
}

func (f *fakePlayer) Toggle()                   { f.calls = append(f.calls, "toggle") }
func (f *fakePlayer) Next()                     { f.calls = append(f.calls, "next") }
func (f *fakePlayer) Previous()                 { f.calls = append(f.calls, "previous") }
func (f *fakePlayer) ToggleMute()               { f.calls = append(f.calls, "mute") }
func (f *fakePlayer) CycleRepeat()              { f.calls = append(f.calls, "repeat") }
func (f *fakePlayer) ToggleShuffle()            { f.calls = append(f.calls, "shuffle") }
func (f *fakePlayer) ClearQueue()               { f.calls = append(f.calls, "clear") }
func (f *fakePlayer) DismissError()             { f.calls = append(f.calls, "dismiss") }
func (f *fakePlayer) SeekBy(d time.Duration)    { f.seeks = append(f.seeks, d) }
func (f *fakePlayer) AdjustVolume(d float64)    { f.volumes = append(f.volumes, d) }
func (f *fakePlayer) JumpTo(i int) error        { f.jumps = append(f.jumps, i); return nil }
func (f *fakePlayer) RemoveEntry(id string) error {
	f.removed = append(f.removed, id)
	return nil
}
func (f *fakePlayer) Reorder(from, to int) error {
	f.moves = append(f.moves, [2]int{from, to})
	return nil
}

type fakeSelection struct {
	entry *queue.Entry
	index int
}

func (s *fakeSelection) SelectedEntry() (*queue.Entry, int) { return s.entry, s.index }

func TestHandleKey_TransportActions(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, nil)

	for _, key := range []string{"space", "n", "p", "m", "R", "S", "c"} {
		if !d.HandleKey(key) {
			t.Errorf("HandleKey(%q) = false, want consumed", key)
		}
	}
	want := []string{"toggle", "next", "previous", "mute", "repeat", "shuffle", "clear"}
	if len(p.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", p.calls, want)
	}
	for i, call := range want {
		if p.calls[i] != call {
			t.Errorf("call %d = %q, want %q", i, p.calls[i], call)
		}
	}
}

func TestHandleKey_SeekAndVolumeSteps(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, nil)

	d.HandleKey("shift+right")
	d.HandleKey("shift+left")
	d.HandleKey("ctrl+right")
	d.HandleKey("+")
	d.HandleKey("-")

	wantSeeks := []time.Duration{seekStep, -seekStep, seekStepLong}
	for i, want := range wantSeeks {
		if p.seeks[i] != want {
			t.Errorf("seek %d = %v, want %v", i, p.seeks[i], want)
		}
	}
	if p.volumes[0] != volumeStep || p.volumes[1] != -volumeStep {
		t.Errorf("volumes = %v, want +/-%v", p.volumes, volumeStep)
	}
}

func TestHandleKey_UnboundKeyPassesThrough(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, nil)

	if d.HandleKey("zz") {
		t.Error("HandleKey(zz) = true, want pass-through")
	}
	if len(p.calls) != 0 {
		t.Errorf("calls = %v, want none", p.calls)
	}
}

func TestHandleKey_TextInputSuppression(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, nil)
	d.SetTextInputFocused(true)

	if d.HandleKey("n") {
		t.Error("HandleKey(n) consumed while text input focused")
	}
	if len(p.calls) != 0 {
		t.Errorf("calls = %v, want none while typing", p.calls)
	}

	// Escape stays live so the user can leave the field state.
	if !d.HandleKey("esc") {
		t.Error("HandleKey(esc) = false, want consumed even while typing")
	}

	d.SetTextInputFocused(false)
	if !d.HandleKey("n") {
		t.Error("HandleKey(n) = false after focus released")
	}
}

func TestHandleKey_QueueActionsUseSelection(t *testing.T) {
	p := &fakePlayer{}
	entry := queue.NewEntry(catalogTrack("t1"), queue.OriginUser)
	sel := &fakeSelection{entry: &entry, index: 2}
	d := NewDispatcher(p, sel)

	d.HandleKey("enter")
	d.HandleKey("d")
	d.HandleKey("shift+k")
	d.HandleKey("shift+j")

	if len(p.jumps) != 1 || p.jumps[0] != 2 {
		t.Errorf("jumps = %v, want [2]", p.jumps)
	}
	if len(p.removed) != 1 || p.removed[0] != entry.InstanceID {
		t.Errorf("removed = %v, want selected entry", p.removed)
	}
	if len(p.moves) != 2 || p.moves[0] != [2]int{2, 1} || p.moves[1] != [2]int{2, 3} {
		t.Errorf("moves = %v, want [[2 1] [2 3]]", p.moves)
	}
}

func TestHandleKey_QueueActionsWithoutSelection(t *testing.T) {
	p := &fakePlayer{}
	d := NewDispatcher(p, &fakeSelection{index: -1})

	d.HandleKey("enter")
	d.HandleKey("d")

	if len(p.jumps) != 0 || len(p.removed) != 0 {
		t.Errorf("jumps = %v removed = %v, want none without selection", p.jumps, p.removed)
	}
}
