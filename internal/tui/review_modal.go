package tui

import (
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/tui/fields"
	"github.com/thenoetrevino/tienda/internal/tui/state"
	"github.com/thenoetrevino/tienda/internal/tui/theme"
)

const (
	reviewFocusBody = iota
	reviewFocusStars
	reviewFocusCount
)

// reviewModal is the overlay hosting one review editor. It is the form's
// Modal, so a successful submission marks it closed.
type reviewModal struct {
	form   *forms.ReviewForm
	body   *fields.TextArea
	stars  *fields.Stars
	focus  int
	closed bool
}

func newReviewModal(rv *models.Review, deps forms.ReviewDeps, keys KeyMap) *reviewModal {
	rm := &reviewModal{}
	deps.Modal = rm
	rm.form = forms.NewReviewForm(forms.ReviewSeed{
		ReviewID:  rv.ID,
		ProductID: rv.ProductID,
		Body:      rv.Body,
		Rating:    rv.Rating,
	}, deps)
	rm.body = fields.NewTextArea("Review", "What did you think of it?", rv.Body, models.MaxReviewLength)
	rm.stars = fields.NewStars(rm.form.Rating(), keys.starKeys())
	return rm
}

// CloseForm implements forms.Modal
func (rm *reviewModal) CloseForm() {
	rm.closed = true
}

func (rm *reviewModal) focusCurrent() tea.Cmd {
	if rm.focus == reviewFocusStars {
		return rm.stars.Focus()
	}
	return rm.body.Focus()
}

func (rm *reviewModal) setFocus(i int) tea.Cmd {
	rm.body.Blur()
	rm.stars.Blur()
	rm.focus = (i + reviewFocusCount) % reviewFocusCount
	return rm.focusCurrent()
}

func (rm *reviewModal) setWidth(width int) {
	rm.body.SetWidth(width)
}

// update forwards a message to the focused field and syncs the draft
func (rm *reviewModal) update(msg tea.Msg) tea.Cmd {
	if rm.focus == reviewFocusStars {
		rm.stars.Update(msg)
		return nil
	}
	changed, cmd := rm.body.Update(msg)
	if changed {
		rm.form.SetBody(rm.body.Value())
	}
	return cmd
}

func (rm *reviewModal) view(width int) string {
	errs := rm.form.Errors()
	inner := width - 4

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title)).
		Render("Edit your review")

	parts := []string{
		title,
		"",
		rm.body.View(errs.Get(forms.FieldBody), inner),
		"",
		rm.stars.View(errs.Get(forms.FieldRating), inner),
		"",
	}
	if msg := errs.Get(forms.FieldServer); msg != "" {
		parts = append(parts, fields.RenderError(msg, inner), "")
	}
	parts = append(parts, submitButton("Update Review", rm.form.SubmitControl(), rm.form.Phase()))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Edit)).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// submitButton renders the gate's control; the label changes while a
// request is in flight.
func submitButton(label string, ctl forms.Control, phase forms.Phase) string {
	if phase == forms.PhaseSubmitting {
		label = "Saving..."
	}

	style := lipgloss.NewStyle().Padding(0, 2)
	if ctl.Enabled {
		style = style.Bold(true).
			Foreground(lipgloss.Color(theme.Normal)).
			Background(lipgloss.Color(theme.Success))
	} else {
		style = style.Foreground(lipgloss.Color(theme.Subtle)).
			Background(lipgloss.Color(theme.Border))
	}
	return style.Render(label)
}

// openReview mounts the editor for rv
func (m *Model) openReview(rv *models.Review) tea.Cmd {
	rm := newReviewModal(rv, forms.ReviewDeps{
		Dispatcher: m.store,
		Identity:   m.session,
		Refresher:  m.reloads,
		Timeout:    m.timeout(),
	}, m.keys)
	rm.setWidth(m.uiState.ModalWidth() - 4)

	m.review = rm
	m.uiState.SetMode(state.ReviewFormMode)
	return rm.focusCurrent()
}

func (m *Model) closeReview() {
	if m.review != nil {
		m.review.stars.Blur()
	}
	m.review = nil
	m.uiState.SetMode(state.ProductMode)
}

func (m Model) updateReviewForm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	rm := m.review
	switch {
	case key.Matches(msg, m.keys.CloseForm):
		m.closeReview()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m, m.submitReview()
	case key.Matches(msg, m.keys.NextField):
		return m, rm.setFocus(rm.focus + 1)
	case key.Matches(msg, m.keys.PrevField):
		return m, rm.setFocus(rm.focus - 1)
	}

	// the draft stays put while a request is in flight
	if rm.form.Phase() != forms.PhaseEditing {
		return m, nil
	}
	return m, rm.update(msg)
}

// submitReview starts a submission and returns the command that sends it
func (m Model) submitReview() tea.Cmd {
	rm := m.review
	pending, err := rm.form.Begin()
	if err != nil {
		slog.Debug("review submission not started", "review_id", rm.form.ReviewID(), "error", err)
		return nil
	}

	ctx := m.ctx
	return func() tea.Msg {
		return reviewSubmittedMsg{modal: rm, result: pending.Dispatch(ctx)}
	}
}

func (m Model) handleReviewSubmitted(msg reviewSubmittedMsg) (tea.Model, tea.Cmd) {
	msg.modal.form.Complete(msg.result)
	cmds := m.drainReloads()

	if msg.modal.closed {
		if m.review == msg.modal {
			m.closeReview()
		}
		m.notifyState.Add(state.LevelInfo, "Review updated")
	}
	return m, batch(cmds...)
}
