package app

import (
	"strings"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/keymap"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/playerbar"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/render"
	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/styles"
)

// View renders the full screen: queue panel on top, player bar below,
// optional help footer underneath.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.queue.View())

	if bar := playerbar.Render(m.snap, m.barMode, m.width); bar != "" {
		b.WriteString("\n")
		b.WriteString(bar)
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.renderHelp())
	}
	return b.String()
}

func (m Model) helpHeight() int {
	if !m.showHelp {
		return 0
	}
	return len(helpContexts) + 1
}

var helpContexts = []string{"global", "playback", "queue"}

// renderHelp renders one line per binding context. Styling is applied
// after truncation so escape sequences do not count against the width.
func (m Model) renderHelp() string {
	muted := styles.T().S().Muted

	lines := make([]string, 0, len(helpContexts))
	for _, ctx := range helpContexts {
		var parts []string
		for _, binding := range keymap.ByContext(ctx) {
			parts = append(parts, strings.Join(binding.Keys, "/")+" "+binding.Description)
		}
		line := render.Truncate(strings.Join(parts, "   "), m.width)
		lines = append(lines, muted.Render(line))
	}
	return strings.Join(lines, "\n")
}
