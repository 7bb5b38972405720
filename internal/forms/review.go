package forms

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// ReviewSeed carries the caller-supplied values for an edit
type ReviewSeed struct {
	ReviewID  int
	ProductID int
	Body      string
	Rating    int
}

// ReviewDeps are the collaborators a review form talks to
type ReviewDeps struct {
	Dispatcher ReviewDispatcher
	Identity   Identity
	Modal      Modal
	Refresher  Refresher
	Timeout    time.Duration
}

// ReviewRequest is the immutable snapshot sent for one submission
type ReviewRequest struct {
	ReviewID int
	Review   dispatch.ReviewPayload
}

// ReviewForm is the controller behind the review editor: the draft, the
// star selector and the submission lifecycle for one open editor.
type ReviewForm struct {
	reviewID  int
	productID int
	body      string
	rating    *RatingSelector

	coord     coordinator
	deps      ReviewDeps
	closeOnce sync.Once
}

// NewReviewForm opens an editor seeded with the existing review
func NewReviewForm(seed ReviewSeed, deps ReviewDeps) *ReviewForm {
	return &ReviewForm{
		reviewID:  seed.ReviewID,
		productID: seed.ProductID,
		body:      seed.Body,
		rating:    NewRatingSelector(seed.Rating),
		deps:      deps,
	}
}

// ReviewID returns the review being edited
func (f *ReviewForm) ReviewID() int {
	return f.reviewID
}

// ProductID returns the product the review belongs to
func (f *ReviewForm) ProductID() int {
	return f.productID
}

// Body returns the current review text
func (f *ReviewForm) Body() string {
	return f.body
}

// SetBody replaces the review text. It never validates.
func (f *ReviewForm) SetBody(body string) {
	f.body = body
}

// Rating returns the star selector
func (f *ReviewForm) Rating() *RatingSelector {
	return f.rating
}

// Draft returns the current values by value
func (f *ReviewForm) Draft() ReviewDraft {
	return ReviewDraft{Body: f.body, Rating: f.rating.Committed()}
}

// Validate runs the validator against the current draft
func (f *ReviewForm) Validate() ErrorSet {
	return ValidateReview(f.Draft())
}

// Errors returns what the editor should display: server errors always,
// validation errors once the user has tried to submit.
func (f *ReviewForm) Errors() ErrorSet {
	server := f.coord.serverErrors()
	if !f.coord.wasAttempted() {
		return ErrorSet{}.merge(server)
	}
	return f.Validate().merge(server)
}

// Phase returns the submission lifecycle phase
func (f *ReviewForm) Phase() Phase {
	return f.coord.current()
}

// CanSubmit reports whether a submit trigger would be accepted now
func (f *ReviewForm) CanSubmit() bool {
	return f.coord.current() == PhaseEditing && ReviewGate(f.Draft())
}

// SubmitControl describes the submit button for the current state
func (f *ReviewForm) SubmitControl() Control {
	return control(f.CanSubmit(), ReviewSubmitActive, ReviewSubmitDisabled)
}

// Begin freezes the current draft into a request and moves to submitting.
// When the gate is closed nothing is built and ErrInvalidDraft is returned.
func (f *ReviewForm) Begin() (*Pending[ReviewRequest], error) {
	if phase := f.coord.attempt(); phase != PhaseEditing {
		if phase == PhaseClosed {
			return nil, ErrFormClosed
		}
		return nil, ErrSubmitInFlight
	}

	draft := f.Draft()
	if !ReviewGate(draft) {
		return nil, ErrInvalidDraft
	}

	userID, ok := 0, false
	if f.deps.Identity != nil {
		userID, ok = f.deps.Identity.CurrentUserID()
	}
	if !ok {
		f.coord.reject(ErrorSet{FieldServer: MsgNotSignedIn})
		return nil, ErrNotSignedIn
	}

	if err := f.coord.begin(); err != nil {
		return nil, err
	}

	req := ReviewRequest{
		ReviewID: f.reviewID,
		Review: dispatch.ReviewPayload{
			Body:      draft.Body,
			Rating:    draft.Rating,
			ProductID: f.productID,
			UserID:    userID,
		},
	}

	slog.Debug("review submission started", "review_id", f.reviewID, "product_id", f.productID)

	return &Pending[ReviewRequest]{
		Request: req,
		send: func(ctx context.Context, r ReviewRequest) (dispatch.Outcome, error) {
			return f.deps.Dispatcher.SubmitEdit(ctx, r.Review, r.ReviewID)
		},
		timeout: f.deps.Timeout,
	}, nil
}

// Complete reconciles the store's answer. Success closes the form once and
// asks for the product to be reloaded; failure keeps the draft as typed.
func (f *ReviewForm) Complete(res Result) {
	if res.OK() {
		if !f.coord.succeed() {
			return
		}
		f.closeOnce.Do(func() {
			if f.deps.Modal != nil {
				f.deps.Modal.CloseForm()
			}
			if f.deps.Refresher != nil {
				f.deps.Refresher.ReloadProduct(f.productID)
			}
		})
		slog.Info("review updated", "review_id", f.reviewID, "product_id", f.productID)
		return
	}

	msg := MsgReviewFailed
	if res.Err != nil {
		msg = transportMessage(res.Err)
	} else {
		slog.Warn("review update rejected", "review_id", f.reviewID, "errors", res.Outcome.Errors)
	}
	f.coord.fail(ErrorSet{FieldServer: msg})
}

// Submit runs Begin, Dispatch and Complete in one call
func (f *ReviewForm) Submit(ctx context.Context) error {
	pending, err := f.Begin()
	if err != nil {
		return err
	}

	res := pending.Dispatch(ctx)
	f.Complete(res)

	if res.Err != nil {
		return fmt.Errorf("submit review: %w", res.Err)
	}
	if !res.Outcome.OK() {
		return ErrRejected
	}
	return nil
}
