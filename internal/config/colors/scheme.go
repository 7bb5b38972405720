package colors

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name (e.g., "default", "monochrome")
	Preset string `yaml:"preset"`

	// Primary accent color (used for titles, focus rings, highlights)
	Accent string `yaml:"accent"`

	// Semantic colors
	Success string `yaml:"success"` // Green - enabled submit
	Edit    string `yaml:"edit"`    // Blue - review editor border
	Danger  string `yaml:"danger"`  // Red - field errors

	// UI element colors
	Border      string `yaml:"border"`
	FocusBorder string `yaml:"focus_border"`
	StarFilled  string `yaml:"star_filled"`
	StarEmpty   string `yaml:"star_empty"`

	// Text colors
	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"` // Muted/placeholder text
	Normal string `yaml:"normal"`

	// Notification colors (foreground/background pairs)
	InfoFg  string `yaml:"info_fg"`
	InfoBg  string `yaml:"info_bg"`
	ErrorFg string `yaml:"error_fg"`
	ErrorBg string `yaml:"error_bg"`
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) *ColorScheme {
	switch name {
	case "monochrome":
		return Monochrome()
	default:
		return Default()
	}
}

// MergeFrom overlays the non-empty values of other onto c
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	for dst, src := range c.pairs(&other) {
		if *src != "" {
			*dst = *src
		}
	}
}

// ApplyDefaults fills in missing color values using the preset as base
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	for dst, src := range c.pairs(preset) {
		if *dst == "" {
			*dst = *src
		}
	}
}

// pairs maps each color field of c to the same field of other
func (c *ColorScheme) pairs(other *ColorScheme) map[*string]*string {
	return map[*string]*string{
		&c.Accent:      &other.Accent,
		&c.Success:     &other.Success,
		&c.Edit:        &other.Edit,
		&c.Danger:      &other.Danger,
		&c.Border:      &other.Border,
		&c.FocusBorder: &other.FocusBorder,
		&c.StarFilled:  &other.StarFilled,
		&c.StarEmpty:   &other.StarEmpty,
		&c.Title:       &other.Title,
		&c.Subtle:      &other.Subtle,
		&c.Normal:      &other.Normal,
		&c.InfoFg:      &other.InfoFg,
		&c.InfoBg:      &other.InfoBg,
		&c.ErrorFg:     &other.ErrorFg,
		&c.ErrorBg:     &other.ErrorBg,
	}
}
