package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

type StatusBarProps struct {
	Width    int
	Username string // empty when signed out
	Hint     string
}

// RenderStatusBar renders a status bar with left and right aligned text
// Left side: "tienda · signed in as <user>"
// Right side: the hint, e.g. "press ? for help"
func RenderStatusBar(props StatusBarProps) string {
	leftText := "tienda · signed out"
	if props.Username != "" {
		leftText = "tienda · signed in as " + props.Username
	}

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))

	leftRendered := style.Render(leftText)
	rightRendered := style.Render(props.Hint)

	gapWidth := max(props.Width-lipgloss.Width(leftRendered)-lipgloss.Width(rightRendered), 1)
	gap := strings.Repeat(" ", gapWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, gap, rightRendered)
}
