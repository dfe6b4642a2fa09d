package keymap

import (
	"slices"
	"testing"
)

func TestResolver_Resolve(t *testing.T) {
	r := NewResolver(All)

	tests := []struct {
		key  string
		want Action
	}{
		{"space", ActionPlayPause},
		{"n", ActionNextTrack},
		{"pgdown", ActionNextTrack},
		{"shift+left", ActionSeekBack},
		{"m", ActionToggleMute},
		{"R", ActionCycleRepeat},
		{"esc", ActionDismissError},
		{"zz", Action("")},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.key); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestResolver_KeysFor(t *testing.T) {
	r := NewResolver(All)

	keys := r.KeysFor(ActionNextTrack)
	if !slices.Contains(keys, "n") || !slices.Contains(keys, "pgdown") {
		t.Errorf("KeysFor(next) = %v, want n and pgdown", keys)
	}
}

func TestResolver_KeysForDeduplicates(t *testing.T) {
	r := NewResolver([]Binding{
		{[]string{"x"}, ActionQuit, "", "global"},
		{[]string{"x", "y"}, ActionQuit, "", "queue"},
	})

	keys := r.KeysFor(ActionQuit)
	if len(keys) != 2 {
		t.Errorf("KeysFor(quit) = %v, want deduplicated x,y", keys)
	}
}

func TestByContext(t *testing.T) {
	for _, b := range ByContext("queue") {
		if b.Context != "queue" {
			t.Errorf("ByContext(queue) returned %q binding", b.Context)
		}
	}
	if len(ByContext("queue")) == 0 {
		t.Error("ByContext(queue) is empty")
	}
}
