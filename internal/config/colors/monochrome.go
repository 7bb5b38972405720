package colors

// Monochrome returns a black and white color scheme
func Monochrome() *ColorScheme {
	return &ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Success: "#FFFFFF",
		Edit:    "#D0D0D0",
		Danger:  "#FFFFFF",

		Border:      "#808080",
		FocusBorder: "#FFFFFF",
		StarFilled:  "#FFFFFF",
		StarEmpty:   "#4E4E4E",

		Title:  "#FFFFFF",
		Subtle: "#808080",
		Normal: "#D0D0D0",

		InfoFg:  "#FFFFFF",
		InfoBg:  "#303030",
		ErrorFg: "#FFFFFF",
		ErrorBg: "#000000",
	}
}
