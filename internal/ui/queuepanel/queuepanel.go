// Package queuepanel renders the play queue and tracks a selection
// cursor over it. The panel holds the latest engine snapshot; all
// mutations go through the playback engine, never through the panel.
package queuepanel

import (
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/cursor"
)

const scrollMargin = 2

// panelOverhead is the rows consumed by border, header and separator.
const panelOverhead = 4

// Model is the queue panel state.
type Model struct {
	snap    playback.Snapshot
	cursor  cursor.Cursor
	width   int
	height  int
	focused bool
}

// New creates an empty queue panel.
func New() *Model {
	return &Model{cursor: cursor.New(scrollMargin)}
}

// SetSnapshot replaces the rendered snapshot. The cursor is clamped in
// case entries were removed underneath it.
func (m *Model) SetSnapshot(s playback.Snapshot) {
	m.snap = s
	m.cursor.ClampToBounds(len(s.Entries))
	m.cursor.EnsureVisible(len(s.Entries), m.listHeight())
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.cursor.EnsureVisible(len(m.snap.Entries), m.listHeight())
}

// SetFocused sets whether the panel has keyboard focus.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused reports whether the panel has keyboard focus.
func (m *Model) IsFocused() bool {
	return m.focused
}

// MoveCursor moves the selection cursor by delta rows.
func (m *Model) MoveCursor(delta int) {
	m.cursor.Move(delta, len(m.snap.Entries), m.listHeight())
}

// CursorToCurrent jumps the cursor to the playing entry.
func (m *Model) CursorToCurrent() {
	if m.snap.CurrentIndex >= 0 {
		m.cursor.Jump(m.snap.CurrentIndex, len(m.snap.Entries), m.listHeight())
	}
}

// SelectedEntry returns the entry under the cursor and its queue index,
// or nil when the queue is empty.
func (m *Model) SelectedEntry() (*queue.Entry, int) {
	idx := m.cursor.Pos()
	if idx < 0 || idx >= len(m.snap.Entries) {
		return nil, -1
	}
	entry := m.snap.Entries[idx]
	return &entry, idx
}

func (m *Model) listHeight() int {
	return max(m.height-panelOverhead-len(m.snap.UpNext), 0)
}
