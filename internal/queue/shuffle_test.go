package queue

import (
	"slices"
	"testing"
)

func isPermutation(p []int, n int) bool {
	if len(p) != n {
		return false
	}
	seen := make([]bool, n)
	for _, v := range p {
		if v < 0 || v >= n || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

func TestPermutation_IsPermutation(t *testing.T) {
	for _, n := range []int{0, 1, 2, 10, 100} {
		p := permutation(n)
		if !isPermutation(p, n) {
			t.Errorf("permutation(%d) = %v, not a permutation", n, p)
		}
	}
}

func TestStore_ShuffleOrder_AlwaysPermutation(t *testing.T) {
	s := NewStore(0, 0)
	es := entries("a", "b", "c", "d", "e")
	_ = s.SetQueue(es, 0)

	check := func(step string) {
		t.Helper()
		if !isPermutation(s.ShuffleOrder(), s.Len()) {
			t.Fatalf("after %s: ShuffleOrder() = %v, not a permutation of 0..%d", step, s.ShuffleOrder(), s.Len()-1)
		}
	}

	check("set queue")
	s.ToggleShuffle()
	check("shuffle on")
	_ = s.Enqueue(entry("f"), PositionEnd)
	check("enqueue")
	_ = s.Remove(es[3].InstanceID)
	check("remove")
	_ = s.Reorder(0, 2)
	check("reorder")
}

func TestStore_ToggleShuffle_OffRestoresLinearOrder(t *testing.T) {
	s := NewStore(0, 0)
	_ = s.SetQueue(entries("a", "b", "c", "d"), 0)
	before := trackIDs(s.Entries())

	s.ToggleShuffle()
	s.ToggleShuffle()

	if s.Shuffle() {
		t.Fatal("Shuffle() = true after two toggles")
	}
	if !slices.Equal(trackIDs(s.Entries()), before) {
		t.Errorf("Entries() = %v, want stored order %v untouched", trackIDs(s.Entries()), before)
	}

	// Linear traversal again after shuffle off.
	var visited []string
	for e := s.Advance(DirectionNext, true); e != nil; e = s.Advance(DirectionNext, true) {
		visited = append(visited, e.Track.ID)
	}
	if !slices.Equal(visited, []string{"b", "c", "d"}) {
		t.Errorf("visited = %v, want [b c d]", visited)
	}
}

func TestStore_Shuffle_TraversalVisitsEveryEntryOnce(t *testing.T) {
	s := NewStore(0, 0)
	_ = s.SetQueue(entries("a", "b", "c", "d", "e"), -1)
	s.ToggleShuffle()

	seen := map[string]int{}
	for e := s.Advance(DirectionNext, true); e != nil; e = s.Advance(DirectionNext, true) {
		seen[e.Track.ID]++
	}

	if len(seen) != 5 {
		t.Fatalf("visited %d distinct tracks, want 5", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("track %s visited %d times, want 1", id, n)
		}
	}
}
