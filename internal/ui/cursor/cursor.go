// Package cursor tracks the selected row and scroll offset of a list
// viewport.
package cursor

// Cursor keeps a selection inside a scrolling list. List length and
// viewport height are parameters on every call, not state: both change
// underneath the cursor as the queue mutates and the window resizes.
type Cursor struct {
	pos    int
	offset int
	margin int
}

// New creates a cursor that keeps margin rows visible around the
// selection while scrolling.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the first visible index.
func (c Cursor) Offset() int { return c.offset }

// Move shifts the selection by delta rows, clamped to the list, and
// rescrolls. No-op on an empty list.
func (c *Cursor) Move(delta, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(c.pos+delta, listLen-1)
	c.scrollTo(listLen, height)
}

// Jump selects an absolute index, clamped to the list, and rescrolls.
// No-op on an empty list.
func (c *Cursor) Jump(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	c.scrollTo(listLen, height)
}

// EnsureVisible rescrolls after the list or the viewport changed size
// out from under the selection.
func (c *Cursor) EnsureVisible(listLen, height int) {
	c.scrollTo(listLen, height)
}

// ClampToBounds pulls the selection back into range after entries were
// removed. It reports whether the selection moved.
func (c *Cursor) ClampToBounds(listLen int) bool {
	if listLen == 0 {
		moved := c.pos != 0 || c.offset != 0
		c.pos = 0
		c.offset = 0
		return moved
	}
	old := c.pos
	c.pos = clamp(c.pos, listLen-1)
	return c.pos != old
}

func (c *Cursor) scrollTo(listLen, height int) {
	if height <= 0 || listLen == 0 {
		return
	}
	if c.pos < c.offset+c.margin {
		c.offset = max(c.pos-c.margin, 0)
	}
	if c.pos >= c.offset+height-c.margin {
		c.offset = c.pos - height + c.margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, maxVal int) int {
	if v < 0 {
		return 0
	}
	if v > maxVal {
		return maxVal
	}
	return v
}
