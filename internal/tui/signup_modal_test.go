package tui

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/session"
	"github.com/thenoetrevino/tienda/internal/tui/state"
)

func newSignupModel(t *testing.T, store *MockStore, sess *session.Store) Model {
	t.Helper()
	m := New(context.Background(), store, sess, testConfig(), Options{Signup: true})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	require.Equal(t, state.SignupFormMode, m.uiState.Mode())
	return m
}

// fillSignup types each value into its field, tabbing between them
func fillSignup(t *testing.T, m Model, values ...string) Model {
	t.Helper()
	for i, v := range values {
		if i > 0 {
			m = update(t, m, keyPress("tab"))
		}
		m = typeText(t, m, v)
	}
	return m
}

func TestSignup_FieldsBindToDraft(t *testing.T) {
	m := newSignupModel(t, newMockStore(), newTestSession(t, false))

	m = fillSignup(t, m, "Ada", "Lovelace", "ada@example.com", "ada", "engine1", "engine1")

	assert.Equal(t, forms.SignupDraft{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@example.com",
		Username:        "ada",
		Password:        "engine1",
		ConfirmPassword: "engine1",
	}, m.signup.form.Draft())
	assert.True(t, m.signup.form.CanSubmit())
}

func TestSignup_FloatingLabels(t *testing.T) {
	m := newSignupModel(t, newMockStore(), newTestSession(t, false))
	assert.False(t, m.signup.form.LabelRaised(forms.FieldFirstName))

	m = typeText(t, m, "A")
	assert.True(t, m.signup.form.LabelRaised(forms.FieldFirstName))
	assert.False(t, m.signup.form.LabelRaised(forms.FieldLastName))

	m = update(t, m, keyPress("backspace"))
	assert.False(t, m.signup.form.LabelRaised(forms.FieldFirstName))
}

func TestSignup_Success(t *testing.T) {
	store := newMockStore()
	store.SignupOutcome = dispatch.Outcome{User: &models.User{ID: 12, Username: "ada"}}
	sess := newTestSession(t, false)
	m := newSignupModel(t, store, sess)

	m = fillSignup(t, m, "Ada", "Lovelace", "ada@example.com", "ada", "engine1", "engine1")
	m, cmd := updateCmd(t, m, keyPress("enter"))
	msg := runCmd(t, cmd)

	require.Len(t, store.Signups, 1)
	assert.Equal(t, dispatch.SignupPayload{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Username:  "ada",
		Password:  "engine1",
	}, store.Signups[0])

	m, cmd = updateCmd(t, m, msg)
	assert.Nil(t, m.signup)

	// opened on its own, the TUI exits once the form closes
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))

	id, ok := sess.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, 12, id)
}

func TestSignup_SubmitKeyFollowsConfig(t *testing.T) {
	store := newMockStore()
	store.SignupOutcome = dispatch.Outcome{User: &models.User{ID: 12, Username: "ada"}}
	cfg := testConfig()
	cfg.KeyMappings.SubmitSignup = "ctrl+enter"

	m := New(context.Background(), store, newTestSession(t, false), cfg, Options{Signup: true})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = fillSignup(t, m, "Ada", "Lovelace", "ada@example.com", "ada", "engine1", "engine1")

	// enter is no longer a submit key once remapped
	m = update(t, m, keyPress("enter"))
	assert.Equal(t, forms.PhaseEditing, m.signup.form.Phase())
	assert.Empty(t, store.Signups)

	// the form-wide submit key still works
	m, cmd := updateCmd(t, m, keyPress("ctrl+s"))
	assert.Equal(t, forms.PhaseSubmitting, m.signup.form.Phase())
	require.NotNil(t, cmd)
	runCmd(t, cmd)
	assert.Len(t, store.Signups, 1)
}

func TestSignup_FromProductPage(t *testing.T) {
	store := newMockStore()
	store.SignupOutcome = dispatch.Outcome{User: &models.User{ID: 12, Username: "ada"}}
	m := newTestModel(t, store, newTestSession(t, false), Options{ProductID: testProductID})

	m = update(t, m, keyPress("s"))
	require.Equal(t, state.SignupFormMode, m.uiState.Mode())

	m = fillSignup(t, m, "Ada", "Lovelace", "ada@example.com", "ada", "engine1", "engine1")
	m, cmd := updateCmd(t, m, keyPress("ctrl+s"))
	m, cmd = updateCmd(t, m, runCmd(t, cmd))

	assert.Nil(t, cmd)
	assert.Equal(t, state.ProductMode, m.uiState.Mode())
	assert.Equal(t, "Welcome, ada! You are signed in.", m.notifyState.All()[0].Message)
}

func TestSignup_AlreadySignedIn(t *testing.T) {
	m := newTestModel(t, newMockStore(), newTestSession(t, true), Options{ProductID: testProductID})

	m = update(t, m, keyPress("s"))
	assert.Equal(t, state.ProductMode, m.uiState.Mode())
	assert.Contains(t, m.notifyState.All()[0].Message, "Already signed in as marta")
}

func TestSignup_ValidationShownAfterAttempt(t *testing.T) {
	store := newMockStore()
	m := newSignupModel(t, store, newTestSession(t, false))

	m = fillSignup(t, m, "Ada", "Lovelace", "not-an-email", "ad", "engine1", "engine2")
	assert.Empty(t, m.signup.form.Errors())

	m, cmd := updateCmd(t, m, keyPress("ctrl+s"))
	assert.Nil(t, cmd)
	assert.Empty(t, store.Signups)

	errs := m.signup.form.Errors()
	assert.Equal(t, "Email must be formatted correctly", errs.Get(forms.FieldEmail))
	assert.Equal(t, "Username must be at least 3 characters long", errs.Get(forms.FieldUsername))
	assert.Equal(t, "Confirm Password field must be the same as the Password field", errs.Get(forms.FieldConfirmPassword))
	assert.False(t, errs.Has(forms.FieldFirstName))

	assert.Contains(t, m.signup.view(64), "Email must be formatted correctly")
}

func TestSignup_ServerFieldErrors(t *testing.T) {
	store := newMockStore()
	store.SignupOutcome = dispatch.Outcome{
		Code:   dispatch.CodeInvalid,
		Errors: map[string]string{dispatch.ErrorKeyEmail: "Email is already registered"},
	}
	sess := newTestSession(t, false)
	m := newSignupModel(t, store, sess)

	m = fillSignup(t, m, "Ada", "Lovelace", "ada@example.com", "ada", "engine1", "engine1")
	m, cmd := updateCmd(t, m, keyPress("ctrl+s"))
	m = update(t, m, runCmd(t, cmd))

	require.NotNil(t, m.signup)
	assert.Equal(t, forms.PhaseEditing, m.signup.form.Phase())
	assert.Equal(t, "Email is already registered", m.signup.form.Errors().Get(forms.FieldEmail))

	_, ok := sess.CurrentUserID()
	assert.False(t, ok)
}

func TestSignup_EscQuitsWhenStandalone(t *testing.T) {
	store := newMockStore()
	m := newSignupModel(t, store, newTestSession(t, false))

	m, cmd := updateCmd(t, m, keyPress("esc"))
	assert.Nil(t, m.signup)
	assert.IsType(t, tea.QuitMsg{}, runCmd(t, cmd))
	assert.Empty(t, store.Signups)
}
