// Package fields holds the input widgets used by the form modals.
package fields

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

// RenderError renders a field message wrapped to width.
// An empty message renders as an empty string.
func RenderError(message string, width int) string {
	if message == "" {
		return ""
	}
	if width > 2 {
		message = wordwrap.String(message, width-2)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Danger)).
		Render("! " + message)
}

func titleStyle(focused bool) lipgloss.Style {
	color := theme.Subtle
	if focused {
		color = theme.Accent
	}
	return lipgloss.NewStyle().Bold(focused).Foreground(lipgloss.Color(color))
}

func borderColor(focused, invalid bool) string {
	switch {
	case invalid:
		return theme.Danger
	case focused:
		return theme.FocusBorder
	default:
		return theme.Border
	}
}
