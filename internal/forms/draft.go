package forms

// Field names. Signup names double as error keys returned by the store.
const (
	FieldBody   = "body"
	FieldRating = "rating"

	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldEmail           = "email"
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"

	// FieldServer holds the message for a failed remote call
	FieldServer = "server"
)

// SignupFields lists the signup inputs in display order
var SignupFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldUsername,
	FieldPassword,
	FieldConfirmPassword,
}

// ReviewDraft is the in-memory state of the review editor
type ReviewDraft struct {
	Body   string
	Rating int
}

// SignupDraft is the in-memory state of the signup form
type SignupDraft struct {
	FirstName       string
	LastName        string
	Email           string
	Username        string
	Password        string
	ConfirmPassword string
}

// Field returns the value of the named field and whether the name is known
func (d SignupDraft) Field(name string) (string, bool) {
	switch name {
	case FieldFirstName:
		return d.FirstName, true
	case FieldLastName:
		return d.LastName, true
	case FieldEmail:
		return d.Email, true
	case FieldUsername:
		return d.Username, true
	case FieldPassword:
		return d.Password, true
	case FieldConfirmPassword:
		return d.ConfirmPassword, true
	}
	return "", false
}

// withField returns a copy of d with one field replaced.
// Unknown names return d unchanged.
func (d SignupDraft) withField(name, value string) (SignupDraft, bool) {
	switch name {
	case FieldFirstName:
		d.FirstName = value
	case FieldLastName:
		d.LastName = value
	case FieldEmail:
		d.Email = value
	case FieldUsername:
		d.Username = value
	case FieldPassword:
		d.Password = value
	case FieldConfirmPassword:
		d.ConfirmPassword = value
	default:
		return d, false
	}
	return d, true
}
