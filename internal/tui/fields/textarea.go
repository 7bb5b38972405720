package fields

import (
	"fmt"
	"unicode/utf8"

	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// TextArea is a multi-line text input field with a character counter
type TextArea struct {
	label    string
	limit    int
	textarea textarea.Model
}

// NewTextArea creates a text area seeded with value. limit is shown in the
// counter but not enforced; the validator reports overlong text instead.
func NewTextArea(label, placeholder, value string, limit int) *TextArea {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetHeight(5)
	ta.SetValue(value)

	return &TextArea{
		label:    label,
		limit:    limit,
		textarea: ta,
	}
}

// Update forwards a message and reports whether the value changed
func (t *TextArea) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := t.textarea.Value()
	var cmd tea.Cmd
	t.textarea, cmd = t.textarea.Update(msg)
	return t.textarea.Value() != before, cmd
}

// View renders the text area with its title, counter and error line
func (t *TextArea) View(errMsg string, width int) string {
	count := utf8.RuneCountInString(t.textarea.Value())
	counter := lipgloss.NewStyle().
		Foreground(lipgloss.Color(borderColor(false, count > t.limit))).
		Render(fmt.Sprintf("%d/%d", count, t.limit))

	header := titleStyle(t.textarea.Focused()).Render(t.label) + "  " + counter

	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(borderColor(t.textarea.Focused(), errMsg != ""))).
		Render(t.textarea.View())

	parts := []string{header, box}
	if errMsg != "" {
		parts = append(parts, RenderError(errMsg, width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// SetWidth sizes the inner text area
func (t *TextArea) SetWidth(width int) {
	t.textarea.SetWidth(max(width-2, 1))
}

// Focus focuses the text area
func (t *TextArea) Focus() tea.Cmd {
	return t.textarea.Focus()
}

// Blur removes focus
func (t *TextArea) Blur() {
	t.textarea.Blur()
}

// Focused returns whether the text area is focused
func (t *TextArea) Focused() bool {
	return t.textarea.Focused()
}

// Value returns the current value
func (t *TextArea) Value() string {
	return t.textarea.Value()
}
