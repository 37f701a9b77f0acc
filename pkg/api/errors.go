package api

import (
	"errors"
	"fmt"
)

var (
	// ErrStepNotFound is returned when a step name is not present in the
	// StepManager. No request is attempted for an unknown step.
	ErrStepNotFound = errors.New("step not found")

	// ErrTransport is returned when sending the request fails for a
	// non-timeout reason (DNS, connection refused, TLS, and so on).
	ErrTransport = errors.New("transport failure")

	// ErrTimeout is returned when the request deadline is exceeded.
	ErrTimeout = errors.New("request timed out")

	// ErrUnexpectedStatus matches any StatusCodeError via errors.Is.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrNoResponse is returned by body accessors when the context holds
	// no response.
	ErrNoResponse = errors.New("no response")

	// ErrRequestConsumed is returned when a context's request handle is
	// taken more than once. A context sends at most one request.
	ErrRequestConsumed = errors.New("request already sent")
)

// StatusCodeError reports a response whose status code was not accepted,
// either because it fell outside an explicit accepted list or outside the
// 2xx range when no list was given.
type StatusCodeError struct {
	// Code is the status code the server actually returned.
	Code int

	// Expected is the accepted status code list from the request
	// descriptor. Empty when the default 2xx rule was in effect.
	Expected []int
}

func (e *StatusCodeError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("unexpected status code %d (want 2xx)", e.Code)
	}
	return fmt.Sprintf("unexpected status code %d (want one of %v)", e.Code, e.Expected)
}

// Is reports whether target is ErrUnexpectedStatus, so callers can match
// any status rejection without inspecting the concrete type.
func (e *StatusCodeError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}
