package forms

import (
	"errors"
	"maps"
	"slices"
)

// Submission errors returned by Begin and Submit
var (
	// ErrInvalidDraft means the submission gate is closed; no request was built
	ErrInvalidDraft = errors.New("form has validation errors")

	// ErrSubmitInFlight means a request for this form is already outstanding
	ErrSubmitInFlight = errors.New("submission already in progress")

	// ErrFormClosed means the form already completed successfully
	ErrFormClosed = errors.New("form is closed")

	// ErrNotSignedIn means there is no current user to attach to the request
	ErrNotSignedIn = errors.New("no signed in user")

	// ErrRejected means the store answered with errors
	ErrRejected = errors.New("submission rejected by store")
)

// ErrorSet maps a field name (or FieldServer) to a human readable message.
// An empty set means the draft is locally valid.
type ErrorSet map[string]string

// Empty reports whether the set holds no errors
func (e ErrorSet) Empty() bool {
	return len(e) == 0
}

// Has reports whether field currently has an error
func (e ErrorSet) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Get returns the message for field, or "" when the field is valid
func (e ErrorSet) Get(field string) string {
	return e[field]
}

// Fields returns the failing field names in sorted order
func (e ErrorSet) Fields() []string {
	return slices.Sorted(maps.Keys(e))
}

// merge returns a new set holding e overlaid with other
func (e ErrorSet) merge(other ErrorSet) ErrorSet {
	out := make(ErrorSet, len(e)+len(other))
	maps.Copy(out, e)
	maps.Copy(out, other)
	return out
}
