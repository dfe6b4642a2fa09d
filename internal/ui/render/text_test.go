package render

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean string untouched", "Night Drive", "Night Drive"},
		{"control characters stripped", "Ni\x00ght\x1b[2J Drive", "Night[2J Drive"},
		{"tab survives", "a\tb", "a\tb"},
		{"nbsp becomes space", "a\u00a0b", "a b"},
		{"invalid utf8 dropped", "a\xffb", "ab"},
		{"high invalid byte dropped", "a\xa0\xf0b", "ab"},
		{"del stripped", "a\x7fb", "ab"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("%s: Sanitize(%q) = %q, want %q", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Night Drive", 20); got != "Night Drive" {
		t.Errorf("short string changed: %q", got)
	}
	if got := Truncate("Night Drive", 7); got != "Night …" {
		t.Errorf("Truncate = %q, want %q", got, "Night …")
	}
	// Wide runes count as two cells.
	if got := Truncate("ナイトドライブ", 6); got != "ナイ…" {
		t.Errorf("wide-rune Truncate = %q, want %q", got, "ナイ…")
	}
}

func TestTruncateAndPad(t *testing.T) {
	got := TruncateAndPad("ab", 5)
	if got != "ab   " {
		t.Errorf("TruncateAndPad = %q, want %q", got, "ab   ")
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if len(got) != 20 {
		t.Errorf("Row width = %d, want 20 (%q)", len(got), got)
	}
	// Left and right content must survive intact.
	if got[:4] != "left" || got[len(got)-5:] != "right" {
		t.Errorf("Row = %q", got)
	}
}
