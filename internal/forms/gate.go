package forms

import "github.com/thenoetrevino/tienda/internal/models"

// Submit control identities, one pair per form
const (
	ReviewSubmitActive   = "review-submit-active"
	ReviewSubmitDisabled = "review-submit-disabled"
	SignupSubmitActive   = "signup-submit-active"
	SignupSubmitDisabled = "signup-submit-disabled"
)

// Control describes how the submit button should be drawn
type Control struct {
	Enabled bool
	ID      string
}

func control(enabled bool, active, disabled string) Control {
	if enabled {
		return Control{Enabled: true, ID: active}
	}
	return Control{Enabled: false, ID: disabled}
}

// minimum is a required field's least acceptable content length
type minimum struct {
	field string
	n     int
}

var signupMinimums = []minimum{
	{FieldFirstName, 1},
	{FieldLastName, 1},
	{FieldEmail, 1},
	{FieldUsername, models.MinUsernameLength},
	{FieldPassword, models.MinPasswordLength},
}

// ReviewGate reports whether a review draft may be submitted
func ReviewGate(d ReviewDraft) bool {
	if !ValidateReview(d).Empty() {
		return false
	}
	return charCount(d.Body) >= models.MinReviewLength && d.Rating >= models.MinRating
}

// SignupGate reports whether a signup draft may be submitted
func SignupGate(d SignupDraft) bool {
	if !ValidateSignup(d).Empty() {
		return false
	}
	for _, m := range signupMinimums {
		v, _ := d.Field(m.field)
		if charCount(v) < m.n {
			return false
		}
	}
	return true
}
