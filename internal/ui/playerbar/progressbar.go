package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// RenderProgressBar renders a block-style progress bar with the play
// state and times around it.
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := icons.Play()
	if !playing {
		status = icons.Pause()
	}

	posStr := formatDuration(position)
	durStr := formatDuration(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		return status + "  " + posStr + " / " + durStr
	}

	var ratio float64
	if duration > 0 {
		ratio = float64(position) / float64(duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)

	bar := barFilledStyle().Render(strings.Repeat(filledBlock, filled)) +
		barEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}
