package forms

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// SignupDeps are the collaborators a signup form talks to
type SignupDeps struct {
	Dispatcher SignupDispatcher
	Session    SessionWriter
	Modal      Modal
	Timeout    time.Duration
}

// SignupForm is the controller behind the account signup form
type SignupForm struct {
	draft SignupDraft

	coord     coordinator
	deps      SignupDeps
	closeOnce sync.Once
}

// NewSignupForm opens an empty signup form
func NewSignupForm(deps SignupDeps) *SignupForm {
	return &SignupForm{deps: deps}
}

// Draft returns the current values by value
func (f *SignupForm) Draft() SignupDraft {
	return f.draft
}

// Value returns the named field's value ("" for unknown names)
func (f *SignupForm) Value(field string) string {
	v, _ := f.draft.Field(field)
	return v
}

// SetField updates one field by name. It reports false for unknown names.
func (f *SignupForm) SetField(field, value string) bool {
	d, ok := f.draft.withField(field, value)
	if ok {
		f.draft = d
	}
	return ok
}

func (f *SignupForm) FirstName() string { return f.draft.FirstName }
func (f *SignupForm) SetFirstName(v string) { f.draft.FirstName = v }
func (f *SignupForm) LastName() string { return f.draft.LastName }
func (f *SignupForm) SetLastName(v string) { f.draft.LastName = v }
func (f *SignupForm) Email() string { return f.draft.Email }
func (f *SignupForm) SetEmail(v string) { f.draft.Email = v }
func (f *SignupForm) Username() string { return f.draft.Username }
func (f *SignupForm) SetUsername(v string) { f.draft.Username = v }
func (f *SignupForm) Password() string { return f.draft.Password }
func (f *SignupForm) SetPassword(v string) { f.draft.Password = v }
func (f *SignupForm) ConfirmPassword() string { return f.draft.ConfirmPassword }
func (f *SignupForm) SetConfirmPassword(v string) { f.draft.ConfirmPassword = v }

// LabelRaised reports whether the field's label floats above its input
func (f *SignupForm) LabelRaised(field string) bool {
	return f.Value(field) != ""
}

// Validate runs the validator against the current draft
func (f *SignupForm) Validate() ErrorSet {
	return ValidateSignup(f.draft)
}

// Errors returns what the form should display: server errors always,
// validation errors once the user has tried to submit.
func (f *SignupForm) Errors() ErrorSet {
	server := f.coord.serverErrors()
	if !f.coord.wasAttempted() {
		return ErrorSet{}.merge(server)
	}
	return f.Validate().merge(server)
}

// Phase returns the submission lifecycle phase
func (f *SignupForm) Phase() Phase {
	return f.coord.current()
}

// CanSubmit reports whether a submit trigger would be accepted now
func (f *SignupForm) CanSubmit() bool {
	return f.coord.current() == PhaseEditing && SignupGate(f.draft)
}

// SubmitControl describes the submit button for the current state
func (f *SignupForm) SubmitControl() Control {
	return control(f.CanSubmit(), SignupSubmitActive, SignupSubmitDisabled)
}

// Begin freezes the current draft into a payload and moves to submitting.
// The confirmation password is left out of the payload.
func (f *SignupForm) Begin() (*Pending[dispatch.SignupPayload], error) {
	if phase := f.coord.attempt(); phase != PhaseEditing {
		if phase == PhaseClosed {
			return nil, ErrFormClosed
		}
		return nil, ErrSubmitInFlight
	}

	d := f.draft
	if !SignupGate(d) {
		return nil, ErrInvalidDraft
	}

	if err := f.coord.begin(); err != nil {
		return nil, err
	}

	slog.Debug("signup submission started", "username", d.Username)

	return &Pending[dispatch.SignupPayload]{
		Request: dispatch.SignupPayload{
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Email:     d.Email,
			Username:  d.Username,
			Password:  d.Password,
		},
		send:    f.deps.Dispatcher.SubmitSignup,
		timeout: f.deps.Timeout,
	}, nil
}

// Complete reconciles the store's answer. Field errors from the store are
// shown inline; anything else becomes the generic server message.
func (f *SignupForm) Complete(res Result) {
	if res.OK() {
		if !f.coord.succeed() {
			return
		}
		f.closeOnce.Do(func() {
			if f.deps.Session != nil && res.Outcome.User != nil {
				if err := f.deps.Session.SignIn(res.Outcome.User); err != nil {
					slog.Error("failed to save session", "error", err)
				}
			}
			if f.deps.Modal != nil {
				f.deps.Modal.CloseForm()
			}
		})
		slog.Info("signup completed", "username", f.draft.Username)
		return
	}

	if res.Err != nil {
		f.coord.fail(ErrorSet{FieldServer: transportMessage(res.Err)})
		return
	}

	slog.Warn("signup rejected", "errors", res.Outcome.Errors)
	f.coord.fail(serverFieldErrors(res.Outcome.Errors))
}

// serverFieldErrors keeps store errors that name a signup field or the
// server key, and falls back to the generic message when none do.
func serverFieldErrors(remote map[string]string) ErrorSet {
	errs := ErrorSet{}
	for key, msg := range remote {
		if key == FieldServer {
			errs[FieldServer] = msg
			continue
		}
		if _, ok := (SignupDraft{}).Field(key); ok {
			errs[key] = msg
		}
	}
	if errs.Empty() {
		errs[FieldServer] = MsgSignupFailed
	}
	return errs
}

// Submit runs Begin, Dispatch and Complete in one call
func (f *SignupForm) Submit(ctx context.Context) error {
	pending, err := f.Begin()
	if err != nil {
		return err
	}

	res := pending.Dispatch(ctx)
	f.Complete(res)

	if res.Err != nil {
		return fmt.Errorf("submit signup: %w", res.Err)
	}
	if !res.Outcome.OK() {
		return ErrRejected
	}
	return nil
}
