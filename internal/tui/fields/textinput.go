package fields

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// FloatingInput is a single-line input whose label sits inside the box as
// a placeholder until the field has a value, then floats above it.
type FloatingInput struct {
	key   string
	label string
	input textinput.Model
}

// NewFloatingInput creates an input bound to a form field key
func NewFloatingInput(key, label string, secret bool) *FloatingInput {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = label
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}

	return &FloatingInput{
		key:   key,
		label: label,
		input: ti,
	}
}

// Update forwards a message to the input and reports whether the value changed
func (f *FloatingInput) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f.input.Value() != before, cmd
}

// View renders the input. raised places the label above the box.
func (f *FloatingInput) View(raised bool, errMsg string, width int) string {
	label := " "
	if raised {
		label = titleStyle(f.input.Focused()).Render(f.label)
	}

	border := borderColor(f.input.Focused(), errMsg != "")
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		Width(width).
		Render(f.input.View())

	parts := []string{label, box}
	if errMsg != "" {
		parts = append(parts, RenderError(errMsg, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetWidth sizes the inner input
func (f *FloatingInput) SetWidth(width int) {
	f.input.SetWidth(max(width-2, 1))
}

// Focus focuses the input
func (f *FloatingInput) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes focus
func (f *FloatingInput) Blur() {
	f.input.Blur()
}

// Focused returns whether the input is focused
func (f *FloatingInput) Focused() bool {
	return f.input.Focused()
}

// Key returns the form field key
func (f *FloatingInput) Key() string {
	return f.key
}

// Label returns the field label
func (f *FloatingInput) Label() string {
	return f.label
}

// Value returns the current value
func (f *FloatingInput) Value() string {
	return f.input.Value()
}
