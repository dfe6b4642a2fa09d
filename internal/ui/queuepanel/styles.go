package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/coder-innovator/indie-pulse-player-sub000/internal/ui/styles"
)

func headerStyle() lipgloss.Style {
	return styles.T().S().Title
}

func modeStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func upNextStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Secondary)
}
