package agentbridge

import (
	"errors"
	"fmt"
)

// RemoteError reports a failed call to the remote assistant service.
// Any non-success HTTP status aborts the chat turn; nothing is retried.
type RemoteError struct {
	Op         string // remote operation, e.g. "create thread"
	StatusCode int    // HTTP status, 0 for transport-level failures
	Message    string // response body excerpt or transport error text
	Cause      error  // underlying error, if any
}

// Error returns the error message.
func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: remote service returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error.
func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// RunError reports a run that reached a terminal failure status, or one
// whose wait was cut short before any terminal status was observed.
type RunError struct {
	Status string // terminal status ("failed" or "cancelled"), empty on timeout
	Cause  error  // context error when the wait was cut short
}

// Error returns the error message. For terminal failures it carries the
// remote status string, matching what callers see in the -32000 envelope.
func (e *RunError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("Run %s", e.Status)
	}
	return fmt.Sprintf("run did not complete: %v", e.Cause)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Cause
}

// IsRemote reports whether err originated from a remote service call.
func IsRemote(err error) bool {
	var re *RemoteError
	return errors.As(err, &re)
}

// IsRunFailure reports whether err represents a run that did not complete.
func IsRunFailure(err error) bool {
	var re *RunError
	return errors.As(err, &re)
}
