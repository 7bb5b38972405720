package colors

// Default returns the default color scheme (purple theme)
func Default() *ColorScheme {
	return &ColorScheme{
		Preset: "default",

		// Primary
		Accent: "#874BFD",

		// Semantic
		Success: "#5FD75F",
		Edit:    "#5F87D7",
		Danger:  "#FF5F5F",

		// UI elements
		Border:      "#585858",
		FocusBorder: "#D75FD7",
		StarFilled:  "#FFD700",
		StarEmpty:   "#585858",

		// Text
		Title:  "#D75FD7",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		// Notifications
		InfoFg:  "#00AFFF",
		InfoBg:  "#00005F",
		ErrorFg: "#FF0000",
		ErrorBg: "#5F0000",
	}
}
