package tui

import (
	"fmt"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/tui/fields"
	"github.com/thenoetrevino/tienda/internal/tui/state"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

var signupLabels = map[string]string{
	forms.FieldFirstName:       "First Name",
	forms.FieldLastName:        "Last Name",
	forms.FieldEmail:           "Email",
	forms.FieldUsername:        "Username",
	forms.FieldPassword:        "Password",
	forms.FieldConfirmPassword: "Confirm Password",
}

// signupModal is the overlay hosting the signup form
type signupModal struct {
	form   *forms.SignupForm
	inputs []*fields.FloatingInput
	focus  int
	closed bool
}

func newSignupModal(deps forms.SignupDeps) *signupModal {
	sm := &signupModal{}
	deps.Modal = sm
	sm.form = forms.NewSignupForm(deps)

	for _, f := range forms.SignupFields {
		secret := f == forms.FieldPassword || f == forms.FieldConfirmPassword
		sm.inputs = append(sm.inputs, fields.NewFloatingInput(f, signupLabels[f], secret))
	}
	return sm
}

// CloseForm implements forms.Modal
func (sm *signupModal) CloseForm() {
	sm.closed = true
}

func (sm *signupModal) focusCurrent() tea.Cmd {
	return sm.inputs[sm.focus].Focus()
}

func (sm *signupModal) setFocus(i int) tea.Cmd {
	sm.inputs[sm.focus].Blur()
	sm.focus = (i + len(sm.inputs)) % len(sm.inputs)
	return sm.focusCurrent()
}

func (sm *signupModal) setWidth(width int) {
	for _, in := range sm.inputs {
		in.SetWidth(width)
	}
}

// update forwards a message to the focused input and syncs the draft
func (sm *signupModal) update(msg tea.Msg) tea.Cmd {
	in := sm.inputs[sm.focus]
	changed, cmd := in.Update(msg)
	if changed {
		sm.form.SetField(in.Key(), in.Value())
	}
	return cmd
}

func (sm *signupModal) view(width int) string {
	errs := sm.form.Errors()
	inner := width - 4

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title)).
		Render("Create an account")

	parts := []string{title}
	for _, in := range sm.inputs {
		parts = append(parts, in.View(sm.form.LabelRaised(in.Key()), errs.Get(in.Key()), inner))
	}
	parts = append(parts, "")
	if msg := errs.Get(forms.FieldServer); msg != "" {
		parts = append(parts, fields.RenderError(msg, inner), "")
	}
	parts = append(parts, submitButton("Sign Up", sm.form.SubmitControl(), sm.form.Phase()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// openSignup mounts the signup form
func (m *Model) openSignup() tea.Cmd {
	sm := newSignupModal(forms.SignupDeps{
		Dispatcher: m.store,
		Session:    m.session,
		Timeout:    m.timeout(),
	})
	sm.setWidth(m.uiState.ModalWidth() - 4)

	m.signup = sm
	m.uiState.SetMode(state.SignupFormMode)
	return sm.focusCurrent()
}

func (m *Model) closeSignup() {
	m.signup = nil
	m.uiState.SetMode(state.ProductMode)
}

func (m Model) updateSignupForm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	sm := m.signup
	switch {
	case key.Matches(msg, m.keys.CloseForm):
		m.closeSignup()
		if m.exitOnClose {
			return m, tea.Quit
		}
		return m, nil
	case key.Matches(msg, m.keys.Submit, m.keys.SubmitSignup):
		return m, m.submitSignup()
	case key.Matches(msg, m.keys.NextField):
		return m, sm.setFocus(sm.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, sm.setFocus(sm.focus - 1)
	}

	if sm.form.Phase() != forms.PhaseEditing {
		return m, nil
	}
	return m, sm.update(msg)
}

func (m Model) submitSignup() tea.Cmd {
	sm := m.signup
	pending, err := sm.form.Begin()
	if err != nil {
		slog.Debug("signup submission not started", "error", err)
		return nil
	}

	ctx := m.ctx
	return func() tea.Msg {
		return signupSubmittedMsg{modal: sm, result: pending.Dispatch(ctx)}
	}
}

func (m Model) handleSignupSubmitted(msg signupSubmittedMsg) (tea.Model, tea.Cmd) {
	msg.modal.form.Complete(msg.result)
	if !msg.modal.closed {
		return m, nil
	}

	if m.signup == msg.modal {
		m.closeSignup()
	}
	if m.exitOnClose {
		return m, tea.Quit
	}

	m.notifyState.Add(state.LevelInfo, fmt.Sprintf("Welcome, %s! You are signed in.", m.currentUsername()))
	return m, nil
}
