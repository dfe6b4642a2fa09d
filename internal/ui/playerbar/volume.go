package playerbar

import (
	"fmt"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/icons"
)

// RenderVolume renders the volume indicator, e.g. "🔊  80%". The level
// shown is the stored one even while muted, since unmuting restores it.
func RenderVolume(level float64, muted bool) string {
	icon := icons.Volume()
	if muted {
		icon = icons.VolumeMute()
	}
	return timeStyle().Render(fmt.Sprintf("%s %3d%%", icon, int(level*100+0.5)))
}
