package forms

import (
	"regexp"
	"unicode/utf8"

	"github.com/thenoetrevino/tienda/internal/models"
)

// Validation messages shown next to the failing field
const (
	MsgBodyTooShort    = "Review text must be at least 10 characters."
	MsgBodyTooLong     = "Review text must be 255 characters or less."
	MsgRatingRequired  = "Select a rating between 1 and 5 stars."
	MsgFirstName       = "First name must be provided"
	MsgLastName        = "Last name must be provided"
	MsgEmail           = "Email must be formatted correctly"
	MsgUsername        = "Username must be at least 3 characters long"
	MsgPassword        = "Password must be at least 6 characters long"
	MsgConfirmPassword = "Confirm Password field must be the same as the Password field"
)

// emailPattern is local-part@domain.tld with no whitespace
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// charCount measures strings in characters so multi-byte input counts once
func charCount(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateReview checks every review rule and reports all failures
func ValidateReview(d ReviewDraft) ErrorSet {
	errs := ErrorSet{}

	n := charCount(d.Body)
	if n < models.MinReviewLength {
		errs[FieldBody] = MsgBodyTooShort
	}
	if n > models.MaxReviewLength {
		errs[FieldBody] = MsgBodyTooLong
	}

	if d.Rating < models.MinRating || d.Rating > models.MaxRating {
		errs[FieldRating] = MsgRatingRequired
	}

	return errs
}

// ValidateSignup checks every signup rule and reports all failures.
// The password length and confirmation rules are independent.
func ValidateSignup(d SignupDraft) ErrorSet {
	errs := ErrorSet{}

	if d.FirstName == "" {
		errs[FieldFirstName] = MsgFirstName
	}
	if d.LastName == "" {
		errs[FieldLastName] = MsgLastName
	}
	if !emailPattern.MatchString(d.Email) {
		errs[FieldEmail] = MsgEmail
	}
	if charCount(d.Username) < models.MinUsernameLength {
		errs[FieldUsername] = MsgUsername
	}
	if charCount(d.Password) < models.MinPasswordLength {
		errs[FieldPassword] = MsgPassword
	}
	if d.ConfirmPassword != d.Password {
		errs[FieldConfirmPassword] = MsgConfirmPassword
	}

	return errs
}
