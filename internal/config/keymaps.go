package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Product page
	EditReview string `yaml:"edit_review"`
	Signup     string `yaml:"signup"`
	Favorite   string `yaml:"favorite"`
	Reload     string `yaml:"reload"`

	// Forms
	SubmitForm   string `yaml:"submit_form"`
	SubmitSignup string `yaml:"submit_signup"`
	NextField    string `yaml:"next_field"`
	PrevField    string `yaml:"prev_field"`
	CloseForm    string `yaml:"close_form"`

	// Rating picker
	StarLeft  string `yaml:"star_left"`
	StarRight string `yaml:"star_right"`

	// Other
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		EditReview: "e",
		Signup:     "s",
		Favorite:   "f",
		Reload:     "r",

		SubmitForm:   "ctrl+s",
		SubmitSignup: "enter",
		NextField:    "tab",
		PrevField:    "shift+tab",
		CloseForm:    "esc",

		StarLeft:  "left",
		StarRight: "right",

		ShowHelp: "?",
		Quit:     "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}

	fill(&k.EditReview, defaults.EditReview)
	fill(&k.Signup, defaults.Signup)
	fill(&k.Favorite, defaults.Favorite)
	fill(&k.Reload, defaults.Reload)
	fill(&k.SubmitForm, defaults.SubmitForm)
	fill(&k.SubmitSignup, defaults.SubmitSignup)
	fill(&k.NextField, defaults.NextField)
	fill(&k.PrevField, defaults.PrevField)
	fill(&k.CloseForm, defaults.CloseForm)
	fill(&k.StarLeft, defaults.StarLeft)
	fill(&k.StarRight, defaults.StarRight)
	fill(&k.ShowHelp, defaults.ShowHelp)
	fill(&k.Quit, defaults.Quit)
}
