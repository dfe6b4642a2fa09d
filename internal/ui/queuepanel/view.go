package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/render"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/styles"
)

// addedColWidth is the right-hand column showing when an entry was
// queued ("3 minutes ago").
const addedColWidth = 16

// View renders the queue panel.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	innerWidth := m.width - 2

	var b strings.Builder
	b.WriteString(m.renderHeader(innerWidth))
	b.WriteString("\n")
	b.WriteString(render.Separator(innerWidth))
	b.WriteString("\n")

	for _, e := range m.snap.UpNext {
		b.WriteString(m.renderUpNextLine(e, innerWidth))
		b.WriteString("\n")
	}
	b.WriteString(m.renderTrackList(innerWidth))

	return styles.PanelStyle(m.focused).Width(innerWidth).Render(b.String())
}

func (m *Model) renderHeader(innerWidth int) string {
	currentPos := m.snap.CurrentIndex + 1
	if currentPos < 1 {
		currentPos = 0
	}
	left := fmt.Sprintf("Queue (%d/%d)", currentPos, len(m.snap.Entries))

	total := lo.SumBy(m.snap.Entries, func(e queue.Entry) time.Duration {
		return e.Track.Duration
	})
	if total > 0 {
		left += " · " + formatTotal(total)
	}

	modeIcons, modeWidth := m.renderModeIcons()
	left = render.TruncateAndPad(left, innerWidth-modeWidth)
	return headerStyle().Render(left) + modeIcons
}

func (m *Model) renderModeIcons() (styled string, width int) {
	var parts []string
	if m.snap.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch m.snap.Repeat {
	case queue.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case queue.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	}
	if len(parts) == 0 {
		return "", 0
	}
	raw := strings.Join(parts, "  ")
	return modeStyle().Render(raw) + " ", lipgloss.Width(raw) + 1
}

func (m *Model) renderUpNextLine(e queue.Entry, width int) string {
	line := "» " + e.Track.Title
	if e.Track.Artist != "" {
		line += " · " + e.Track.Artist
	}
	return upNextStyle().Render(render.TruncateAndPad(line, width))
}

func (m *Model) renderTrackList(innerWidth int) string {
	listHeight := m.listHeight()
	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.cursor.Offset()
		if idx >= len(m.snap.Entries) {
			lines = append(lines, render.EmptyLine(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(m.snap.Entries[idx], idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTrackLine(e queue.Entry, idx, width int) string {
	prefix := "  "
	if idx == m.snap.CurrentIndex {
		prefix = icons.Play() + " "
	}

	contentWidth := width - lipgloss.Width(prefix) - addedColWidth
	titleWidth := contentWidth * 55 / 100
	artistWidth := contentWidth - titleWidth

	title := render.TruncateAndPad(e.Track.Title, titleWidth)
	artist := render.TruncateAndPad(e.Track.Artist, artistWidth)

	added := ""
	if !e.AddedAt.IsZero() {
		added = humanize.Time(e.AddedAt)
	}
	addedCol := render.Pad(render.Truncate(added, addedColWidth), addedColWidth)

	line := prefix + title + artist + addedCol
	return m.trackStyle(idx).Render(line)
}

func (m *Model) trackStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor.Pos() && m.focused
	isPlaying := idx == m.snap.CurrentIndex
	isPlayed := m.snap.CurrentIndex >= 0 && idx < m.snap.CurrentIndex

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	case isPlayed:
		return s.Subtle
	default:
		return s.Base
	}
}

func formatTotal(d time.Duration) string {
	h := int(d.Hours())
	min := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, min)
	}
	return fmt.Sprintf("%d min", min)
}
