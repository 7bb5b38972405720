package theme

import "github.com/thenoetrevino/tienda/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Accent      string
	Success     string
	Edit        string
	Danger      string
	Border      string
	FocusBorder string
	StarFilled  string
	StarEmpty   string
	Title       string
	Subtle      string
	Normal      string
	InfoFg      string
	InfoBg      string
	ErrorFg     string
	ErrorBg     string

	// MarkdownStyle is the glamour standard style used for the product page
	MarkdownStyle = "dark"
)

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Accent = colors.Accent
	Success = colors.Success
	Edit = colors.Edit
	Danger = colors.Danger
	Border = colors.Border
	FocusBorder = colors.FocusBorder
	StarFilled = colors.StarFilled
	StarEmpty = colors.StarEmpty
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg

	MarkdownStyle = "dark"
	if colors.Preset == "monochrome" {
		MarkdownStyle = "notty"
	}
}
