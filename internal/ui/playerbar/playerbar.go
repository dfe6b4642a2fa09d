// Package playerbar renders the player bar from an engine snapshot. It
// is purely presentational: all state comes in through the snapshot and
// nothing is written back.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/render"
)

// DisplayMode controls the player bar appearance.
type DisplayMode int

const (
	ModeCompact  DisplayMode = iota // single content line
	ModeExpanded                    // multi-line view with metadata
)

// Toggle flips between the two modes.
func (m DisplayMode) Toggle() DisplayMode {
	if m == ModeCompact {
		return ModeExpanded
	}
	return ModeCompact
}

const expandedRows = 6

// Height returns the rendered height of the bar, borders included.
func Height(mode DisplayMode) int {
	if mode == ModeExpanded {
		return expandedRows + 2
	}
	return 3
}

// Render renders the player bar for the given width. It returns "" when
// there is nothing to show: no current track and no surfaced error.
func Render(s playback.Snapshot, mode DisplayMode, width int) string {
	if !s.HasTrack() && s.Err == nil {
		return ""
	}
	if mode == ModeExpanded {
		return renderExpanded(s, width)
	}
	return renderCompact(s, width)
}

func renderCompact(s playback.Snapshot, width int) string {
	innerWidth := max(width-6, 0)

	if !s.HasTrack() {
		// Error with no track left to show (for instance after the
		// failure cascade stopped the engine).
		line := errorStyle().Render(render.Truncate(icons.Warning()+" "+s.Err.Error(), innerWidth))
		return barStyle().Padding(0, 2).Width(width - 2).Render(line)
	}

	track := s.Current.Track
	status := statusSymbol(s)

	title := track.Title
	if title == "" {
		title = "Unknown Track"
	}
	artist := track.Artist

	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))
	volStr := RenderVolume(s.Volume, s.Muted)

	separator := "   "
	sepWidth := lipgloss.Width(separator)

	const minBarWidth = 10
	const minTitleWidth = 10

	// Narrow widths shed the volume cell, then the time cell, then the
	// bar itself, so the content line never outgrows the box and wraps.
	showVol, showTime, showBar := true, true, true
	fixedWidth := func() int {
		w := sepWidth + lipgloss.Width(status)
		if showBar {
			w += 2 + minBarWidth
		}
		if showTime {
			w += sepWidth + lipgloss.Width(timeStr)
		}
		if showVol {
			w += sepWidth + lipgloss.Width(volStr)
		}
		return w
	}
	for _, cell := range []*bool{&showVol, &showTime, &showBar} {
		if innerWidth-fixedWidth() >= minTitleWidth {
			break
		}
		*cell = false
	}

	availableForText := max(innerWidth-fixedWidth(), 1)

	titleWidth := lipgloss.Width(title)
	artistWidth := lipgloss.Width(artist)

	var styledTitle, styledArtist string
	var usedTextWidth int
	if artist != "" && titleWidth+sepWidth+artistWidth <= availableForText {
		styledTitle = titleStyle().Render(title)
		styledArtist = artistStyle().Render(artist)
		usedTextWidth = titleWidth + sepWidth + artistWidth
	} else {
		title = render.Truncate(title, availableForText)
		styledTitle = titleStyle().Render(title)
		usedTextWidth = lipgloss.Width(title)
	}

	var content strings.Builder
	content.WriteString(styledTitle)
	if styledArtist != "" {
		content.WriteString(separator)
		content.WriteString(styledArtist)
	}
	content.WriteString(separator)
	content.WriteString(status)
	if showBar {
		barWidth := minBarWidth + max(innerWidth-usedTextWidth-fixedWidth(), 0)
		content.WriteString("  ")
		content.WriteString(renderThinBar(s.Position, s.Duration, barWidth))
	}
	if showTime {
		content.WriteString(separator)
		content.WriteString(timeStyle().Render(timeStr))
	}
	if showVol {
		content.WriteString(separator)
		content.WriteString(volStr)
	}

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

// renderThinBar draws the compact progress line with box-drawing runes.
func renderThinBar(position, duration time.Duration, width int) string {
	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(width)*ratio), width)
	return barFilledStyle().Render(strings.Repeat("━", filled)) +
		barEmptyStyle().Render(strings.Repeat("─", width-filled))
}

func statusSymbol(s playback.Snapshot) string {
	switch {
	case s.Err != nil:
		return errorStyle().Render(icons.Warning())
	case s.State == playback.StateLoading:
		return metaStyle().Render("…")
	case s.State == playback.StatePlaying:
		return icons.Play()
	default:
		return icons.Pause()
	}
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	sec := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, sec)
}
