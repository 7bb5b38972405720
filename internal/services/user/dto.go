package user

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// SignupRequest is the account creation DTO checked with validator tags.
// The form tag names the key used in field errors.
type SignupRequest struct {
	FirstName string `form:"firstName" validate:"required"`
	LastName  string `form:"lastName" validate:"required"`
	Email     string `form:"email" validate:"required,email"`
	Username  string `form:"username" validate:"required,min=3,max=32"`
	// bcrypt only looks at the first 72 bytes
	Password string `form:"password" validate:"required,min=6,max=72"`
}

// fieldMessages are shown for a field regardless of which tag failed
var fieldMessages = map[string]string{
	"firstName": "First name must be provided",
	"lastName":  "Last name must be provided",
	"email":     "Email must be formatted correctly",
	"username":  "Username must be between 3 and 32 characters long",
	"password":  "Password must be between 6 and 72 characters long",
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func signupValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Ok validates the DTO and returns field errors keyed by form name
func (dto *SignupRequest) Ok() (map[string]string, bool) {
	errorMessages := map[string]string{}

	err := signupValidator().Struct(dto)
	if err == nil {
		return errorMessages, true
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		errorMessages["server"] = err.Error()
		return errorMessages, false
	}

	for _, fe := range errs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = fe.Error()
		}
		errorMessages[fe.Field()] = msg
	}
	return errorMessages, len(errorMessages) == 0
}
