package playerbar

import (
	"fmt"
	"strings"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/playback"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/queue"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/render"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/styles"
)

// renderExpanded renders the multi-line player view.
func renderExpanded(s playback.Snapshot, width int) string {
	innerWidth := max(width-2, 0)
	if innerWidth < 40 {
		// Too narrow for the expanded layout.
		return renderCompact(s, width)
	}
	contentWidth := innerWidth - 4 // horizontal padding

	lines := make([]string, 0, expandedRows)

	title := "Nothing playing"
	artist := ""
	if s.HasTrack() {
		title = s.Current.Track.Title
		artist = s.Current.Track.Artist
	}

	t := styles.T()
	lines = append(lines, styles.ApplyBoldGradient(render.Truncate(title, contentWidth), t.Primary, t.Secondary))
	lines = append(lines, artistStyle().Render(render.Truncate(metaLine(s, artist), contentWidth)))

	if s.Err != nil {
		errLine := icons.Warning() + " " + s.Err.Error() + "  (esc to dismiss)"
		lines = append(lines, errorStyle().Render(render.Truncate(errLine, contentWidth)))
	} else {
		lines = append(lines, "")
	}

	lines = append(lines, RenderProgressBar(s.Position, s.Duration, contentWidth, s.State == playback.StatePlaying))

	left := RenderVolume(s.Volume, s.Muted)
	lines = append(lines, render.Row(left, modeIndicators(s), contentWidth))

	switch {
	case s.Stalled:
		lines = append(lines, metaStyle().Render("buffering stream…"))
	case s.State == playback.StateLoading && s.RetryCount > 0:
		lines = append(lines, metaStyle().Render(fmt.Sprintf("reconnecting (attempt %d)…", s.RetryCount+1)))
	default:
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return barStyle().Padding(0, 2).Width(innerWidth).Render(content)
}

// metaLine combines artist, genre and queue position into one line.
func metaLine(s playback.Snapshot, artist string) string {
	var parts []string
	if artist != "" {
		parts = append(parts, artist)
	}
	if s.HasTrack() && s.Current.Track.Genre != "" {
		parts = append(parts, s.Current.Track.Genre)
	}
	if s.CurrentIndex >= 0 && len(s.Entries) > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", s.CurrentIndex+1, len(s.Entries)))
	}
	return strings.Join(parts, " · ")
}

// modeIndicators shows the active shuffle and repeat modes.
func modeIndicators(s playback.Snapshot) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch s.Repeat {
	case queue.RepeatAll:
		parts = append(parts, icons.RepeatAll())
	case queue.RepeatOne:
		parts = append(parts, icons.RepeatOne())
	}
	if len(parts) == 0 {
		return ""
	}
	return metaStyle().Render(strings.Join(parts, "  "))
}
