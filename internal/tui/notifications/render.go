package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/thenoetrevino/tienda/internal/tui/state"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

// maxWidth keeps long store errors from covering the product page
const maxWidth = 40

type style struct {
	icon       string
	title      string
	foreground string
	background string
}

func styleFor(level state.NotificationLevel) style {
	if level == state.LevelError {
		return style{
			icon:       "✕",
			title:      "Error",
			foreground: theme.ErrorFg,
			background: theme.ErrorBg,
		}
	}
	return style{
		icon:       "🔔",
		title:      "Info",
		foreground: theme.InfoFg,
		background: theme.InfoBg,
	}
}

// Render renders a notification banner
func Render(n state.Notification) string {
	s := styleFor(n.Level)

	message := wordwrap.String(n.Message, maxWidth)
	header := s.icon + " " + s.title
	width := max(lipgloss.Width(header), lipgloss.Width(message))

	headerView := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Bold(true).
		Width(width).
		Render(header)

	body := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.foreground)).
		Width(width).
		Render(message)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(s.background)).
		Background(lipgloss.Color(s.background)).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, headerView, body))
}
