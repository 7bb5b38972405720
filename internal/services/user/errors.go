package user

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// User-related errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Messages for uniqueness failures, keyed the same way as field errors
const (
	MsgEmailTaken    = "Email is already registered"
	MsgUsernameTaken = "Username is already taken"
)

// ValidationError carries one message per failing signup field.
// Keys match the signup form's field names.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid signup: " + strings.Join(parts, "; ")
}
