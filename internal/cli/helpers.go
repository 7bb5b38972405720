package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
)

var (
	// ErrInvalidID is returned by ParseID for anything but a positive integer
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidFlag means a flag value is outside what the command accepts
	ErrInvalidFlag = errors.New("invalid flag")
)

// ExitError carries the process exit code for a failed command. The
// message has already been printed by the time it is returned.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode picks the exit status for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return Classify(err).Exit
}

// ParseID parses a positive record id from a positional argument
func ParseID(arg, what string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s id must be a positive integer, got %q", ErrInvalidID, what, arg)
	}
	return id, nil
}

// Failure describes how a command error is reported to the user
type Failure struct {
	Code       string
	Message    string
	Suggestion string
	Exit       int
}

// Classify maps an error from the store or the forms package to a
// reportable failure
func Classify(err error) Failure {
	var daemonErr *dispatch.DaemonError
	switch {
	case errors.As(err, &daemonErr):
		return Failure{"DAEMON_UNAVAILABLE", daemonErr.Message, daemonErr.Hint, ExitGeneral}
	case errors.Is(err, ErrInvalidID):
		return Failure{"INVALID_ID", err.Error(), "", ExitUsage}
	case errors.Is(err, ErrInvalidFlag):
		return Failure{"INVALID_FLAG", err.Error(), "", ExitUsage}
	case errors.Is(err, dispatch.ErrNotFound):
		return Failure{"NOT_FOUND", err.Error(), "", ExitNotFound}
	case errors.Is(err, forms.ErrInvalidDraft):
		return Failure{"VALIDATION_ERROR", "the draft failed validation", "", ExitValidation}
	case errors.Is(err, forms.ErrNotSignedIn):
		return Failure{"NOT_SIGNED_IN", forms.MsgNotSignedIn, "Sign in with: tienda login", ExitGeneral}
	case errors.Is(err, dispatch.ErrUnauthorized):
		return Failure{"UNAUTHORIZED", err.Error(), "Check which account is signed in: tienda login", ExitGeneral}
	case errors.Is(err, dispatch.ErrRateLimited):
		return Failure{"RATE_LIMITED", "the store is rate limiting requests", "Wait a moment and try again", ExitGeneral}
	case errors.Is(err, context.DeadlineExceeded):
		return Failure{"TIMEOUT", forms.MsgTimedOut, "", ExitGeneral}
	case errors.Is(err, dispatch.ErrConnectionLost):
		d := dispatch.ClassifyDaemonError(err)
		return Failure{"CONNECTION_LOST", forms.MsgUnreachable, d.Hint, ExitGeneral}
	case errors.Is(err, forms.ErrRejected):
		return Failure{"REJECTED", err.Error(), "", ExitGeneral}
	}
	return Failure{"ERROR", err.Error(), "", ExitGeneral}
}

// Fail prints err through the formatter and returns an *ExitError to hand
// back to cobra
func Fail(f *OutputFormatter, err error) error {
	return FailFields(f, err, nil)
}

// FailFields is Fail with per-field messages attached
func FailFields(f *OutputFormatter, err error, fields map[string]string) error {
	failure := Classify(err)
	if fmtErr := f.FieldErrors(failure.Code, failure.Message, failure.Suggestion, fields); fmtErr != nil {
		return fmtErr
	}
	return &ExitError{Code: failure.Exit, Err: err}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
