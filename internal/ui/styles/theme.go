// Package styles holds the shared color palette and panel chrome for
// the terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the application color palette.
type Theme struct {
	Primary   lipgloss.Color // accent, playing track, gradients
	Secondary lipgloss.Color // gradient tail, warnings

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Error lipgloss.Color

	styles *Styles
}

// Styles contains pre-built lipgloss styles for common patterns.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style
	Cursor  lipgloss.Style
	Error   lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#7dd3a0"),
	Secondary: lipgloss.Color("#e8b44c"),

	FgBase:   lipgloss.Color("#c8c8c8"),
	FgMuted:  lipgloss.Color("#848484"),
	FgSubtle: lipgloss.Color("#5a5a5a"),

	BgCursor: lipgloss.Color("#2e2e2e"),

	Border:      lipgloss.Color("#5a5a5a"),
	BorderFocus: lipgloss.Color("#7dd3a0"),

	Error: lipgloss.Color("#ff6b6b"),
}

// T returns the active theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the pre-built styles for the theme.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		base := lipgloss.NewStyle().Foreground(t.FgBase)
		t.styles = &Styles{
			Base:    base,
			Muted:   lipgloss.NewStyle().Foreground(t.FgMuted),
			Subtle:  lipgloss.NewStyle().Foreground(t.FgSubtle),
			Title:   base.Bold(true),
			Playing: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
			Cursor:  lipgloss.NewStyle().Background(t.BgCursor).Foreground(t.FgBase),
			Error:   lipgloss.NewStyle().Foreground(t.Error),
		}
	}
	return t.styles
}

// PanelStyle returns the bordered panel chrome, highlighted when the
// panel has focus.
func PanelStyle(focused bool) lipgloss.Style {
	color := defaultTheme.Border
	if focused {
		color = defaultTheme.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
