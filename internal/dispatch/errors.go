package dispatch

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

var (
	// ErrClientClosed is returned for calls on a closed client
	ErrClientClosed = errors.New("dispatch client closed")

	// ErrConnectionLost means the daemon went away before answering
	ErrConnectionLost = errors.New("connection to daemon lost")

	// ErrNotFound means the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the request names a user that may not perform it
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited means the daemon refused the request to protect itself
	ErrRateLimited = errors.New("rate limited")
)

// outcomeError converts a failed read Outcome into an error
func outcomeError(o Outcome) error {
	if o.OK() {
		return nil
	}

	switch o.Code {
	case CodeNotFound:
		return ErrNotFound
	case CodeUnauthorized:
		return ErrUnauthorized
	case CodeRateLimited:
		return ErrRateLimited
	}

	if msg, ok := o.Errors[ErrorKeyServer]; ok {
		return fmt.Errorf("store error: %s", msg)
	}
	return fmt.Errorf("store error: %v", o.Errors)
}

// ErrorCode represents daemon-related error types.
type ErrorCode int

const (
	ErrSocketNotFound ErrorCode = iota
	ErrSocketPermission
	ErrDaemonNotRunning
	ErrConnectionRefused
)

// DaemonError represents a structured daemon error with context.
type DaemonError struct {
	Code    ErrorCode
	Message string
	Hint    string
}

// Error implements the error interface.
func (e *DaemonError) Error() string {
	if e.Hint != "" {
		return e.Message + ". " + e.Hint
	}
	return e.Message
}

// ClassifyDaemonError maps dial errors to a DaemonError with a hint for the user.
func ClassifyDaemonError(err error) *DaemonError {
	if err == nil {
		return nil
	}

	if os.IsNotExist(err) || errors.Is(err, syscall.ENOENT) {
		return &DaemonError{
			Code:    ErrSocketNotFound,
			Message: "Socket file not found",
			Hint:    "Start the store: tienda daemon",
		}
	}

	if os.IsPermission(err) || errors.Is(err, syscall.EACCES) {
		return &DaemonError{
			Code:    ErrSocketPermission,
			Message: "Permission denied",
			Hint:    "Check ~/.tienda/ permissions: chmod 700 ~/.tienda/",
		}
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return &DaemonError{
			Code:    ErrConnectionRefused,
			Message: "Connection refused",
			Hint:    "The store may have crashed. Restart it: tienda daemon",
		}
	}

	return &DaemonError{
		Code:    ErrDaemonNotRunning,
		Message: "Store not running",
		Hint:    "Start the store: tienda daemon",
	}
}
