package forms

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// Messages for failed remote calls
const (
	MsgReviewFailed = "Failed to update the review"
	MsgSignupFailed = "Unable to sign up right now. Please try again."
	MsgUnreachable  = "Could not reach the store. Please try again."
	MsgTimedOut     = "The store took too long to respond. Please try again."
	MsgNotSignedIn  = "You must be signed in to update a review"
)

// defaultTimeout bounds a dispatch when the caller configured none
const defaultTimeout = 10 * time.Second

// Phase is the submission lifecycle of one form instance
type Phase int

const (
	PhaseEditing Phase = iota
	PhaseSubmitting
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseEditing:
		return "editing"
	case PhaseSubmitting:
		return "submitting"
	case PhaseClosed:
		return "closed"
	}
	return "unknown"
}

// coordinator guards the editing -> submitting -> closed|editing transitions.
// The mutex covers triggers that can race (keyboard and click).
type coordinator struct {
	mu        sync.Mutex
	phase     Phase
	server    ErrorSet
	attempted bool
}

func (c *coordinator) current() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// attempt records a submit trigger and returns the phase it arrived in.
// Only a trigger that arrives while editing counts as an attempt.
func (c *coordinator) attempt() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == PhaseEditing {
		c.attempted = true
	}
	return c.phase
}

func (c *coordinator) wasAttempted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempted
}

func (c *coordinator) serverErrors() ErrorSet {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server
}

// begin moves editing -> submitting and clears the previous server errors
func (c *coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.phase {
	case PhaseSubmitting:
		return ErrSubmitInFlight
	case PhaseClosed:
		return ErrFormClosed
	}
	c.phase = PhaseSubmitting
	c.server = nil
	return nil
}

// succeed moves submitting -> closed. It reports false for stale results.
func (c *coordinator) succeed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseSubmitting {
		return false
	}
	c.phase = PhaseClosed
	c.server = nil
	return true
}

// fail moves submitting -> editing and records errs for display
func (c *coordinator) fail(errs ErrorSet) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase != PhaseSubmitting {
		return false
	}
	c.phase = PhaseEditing
	c.server = errs
	return true
}

// reject records errs without leaving editing
func (c *coordinator) reject(errs ErrorSet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.server = errs
}

// Result is what came back from one dispatch
type Result struct {
	Outcome dispatch.Outcome
	Err     error
}

// OK reports whether the store accepted the request
func (r Result) OK() bool {
	return r.Err == nil && r.Outcome.OK()
}

// transportMessage picks the message shown for a call that never got an answer
func transportMessage(err error) string {
	slog.Warn("form submission transport error", "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return MsgTimedOut
	}
	return MsgUnreachable
}

// Pending is a frozen request waiting to be sent. It holds only the
// snapshot, so Dispatch may run off the UI loop.
type Pending[R any] struct {
	Request R

	send    func(context.Context, R) (dispatch.Outcome, error)
	timeout time.Duration
}

// Dispatch issues the single outbound call for this submission
func (p *Pending[R]) Dispatch(ctx context.Context) Result {
	timeout := p.timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome, err := p.send(ctx, p.Request)
	return Result{Outcome: outcome, Err: err}
}
