package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 64

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Rating:", "Uptime:"
	ValueStyle    lipgloss.Style // For field values

	// Status styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style

	starFilled lipgloss.Style
	starEmpty  lipgloss.Style
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes all CLI styles with the given color scheme
func Init(colors config.ColorScheme) {
	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Normal))

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.InfoFg)).
		Background(lipgloss.Color(colors.InfoBg)).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	starFilled = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.StarFilled))
	starEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color(colors.StarEmpty))
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// Field renders one "Label: value" line
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderStars renders a rating as five filled or empty stars
func RenderStars(rating int) string {
	rating = max(0, min(rating, models.MaxRating))
	return starFilled.Render(strings.Repeat("★", rating)) +
		starEmpty.Render(strings.Repeat("☆", models.MaxRating-rating))
}

// RenderReview renders a review as a card
// Format:
//
//	Review #3 by marta
//	★★★★☆
//	body
func RenderReview(rv *models.Review) string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Review #%d", rv.ID)))
	if rv.Username != "" {
		b.WriteString(SubtitleStyle.Render(" by " + rv.Username))
	}
	b.WriteString("\n")
	b.WriteString(RenderStars(rv.Rating))
	b.WriteString("\n\n")
	b.WriteString(ValueStyle.Render(rv.Body))
	return RenderCard(b.String())
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
