package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/tui/fields"
)

// KeyMap holds the bindings built from the user's key mappings
type KeyMap struct {
	EditReview key.Binding
	Signup     key.Binding
	Favorite   key.Binding
	Reload     key.Binding

	Submit       key.Binding
	SubmitSignup key.Binding
	NextField    key.Binding
	PrevField    key.Binding
	CloseForm    key.Binding

	StarLeft   key.Binding
	StarRight  key.Binding
	StarSelect key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// NewKeyMap creates bindings from config key mappings
func NewKeyMap(km config.KeyMappings) KeyMap {
	bind := func(k, help string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, help))
	}

	return KeyMap{
		EditReview: bind(km.EditReview, "edit my review"),
		Signup:     bind(km.Signup, "sign up"),
		Favorite:   bind(km.Favorite, "toggle favorite"),
		Reload:     bind(km.Reload, "reload product"),

		Submit:       bind(km.SubmitForm, "submit form"),
		SubmitSignup: bind(km.SubmitSignup, "submit signup"),
		NextField:    bind(km.NextField, "next field"),
		PrevField:    bind(km.PrevField, "previous field"),
		CloseForm:    bind(km.CloseForm, "close form"),

		StarLeft:  bind(km.StarLeft, "fewer stars"),
		StarRight: bind(km.StarRight, "more stars"),

		StarSelect: key.NewBinding(
			key.WithKeys("enter", "space"),
			key.WithHelp("enter/1-5", "select rating"),
		),

		Help:      bind(km.ShowHelp, "toggle help"),
		Quit:      bind(km.Quit, "quit"),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k KeyMap) starKeys() fields.StarKeys {
	return fields.StarKeys{
		Left:   k.StarLeft,
		Right:  k.StarRight,
		Select: k.StarSelect,
	}
}

// helpSections groups bindings for the help overlay
func (k KeyMap) helpSections() []helpSection {
	return []helpSection{
		{"Product", []key.Binding{k.EditReview, k.Signup, k.Favorite, k.Reload, k.Help, k.Quit}},
		{"Forms", []key.Binding{k.Submit, k.SubmitSignup, k.NextField, k.PrevField, k.CloseForm}},
		{"Rating", []key.Binding{k.StarLeft, k.StarRight, k.StarSelect}},
	}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
