package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func artistStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func timeStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func errorStyle() lipgloss.Style {
	return styles.T().S().Error
}

func barFilledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func barEmptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}
