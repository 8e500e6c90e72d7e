package twindex

import (
	"errors"
	"fmt"
)

// ErrRequestInFlight is returned when a submit is attempted while another
// request is still running. The caller retries after the current request
// resolves; nothing is queued.
var ErrRequestInFlight = errors.New("a simulation request is already in flight")

// ValidationError is a pre-flight rejection: the profile or question failed a
// local check and the remote endpoint was never contacted.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string { return e.Err.Error() }
func (e *ValidationError) Unwrap() error { return e.Err }

// TransportError means the call itself could not complete, e.g. a refused
// connection. The request may simply be retried.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("cannot reach the simulation service (%v); verify the service is running and reachable", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BackendError is a non-2xx response from the simulation service. Message is
// extracted from the response body when possible, otherwise it carries the
// HTTP status line.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string { return e.Message }

// MalformedResponseError is a 2xx response whose body did not contain the
// expected result field. It is deliberately distinct from BackendError: the
// service answered, but not in the agreed shape.
type MalformedResponseError struct {
	Detail string
}

func (e *MalformedResponseError) Error() string {
	return "invalid response format: " + e.Detail
}
