package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for classifying fetch and decode failures. Callers wrap
// these so views can branch on the category with errors.Is.
var (
	// ErrTransport indicates the request never produced a response:
	// unreachable network, DNS failure, connection reset.
	ErrTransport = errors.New("transport error")

	// ErrHTTPStatus indicates the gateway answered with a non-2xx status.
	ErrHTTPStatus = errors.New("http status error")

	// ErrParse indicates the body was not valid JSON or not the shape the
	// panel expects.
	ErrParse = errors.New("parse error")

	// ErrTimeout indicates the fetch exceeded its bounded wait.
	ErrTimeout = errors.New("timeout")

	// ErrEmptyScorecard indicates a scorecard snapshot with zero dates.
	ErrEmptyScorecard = errors.New("empty scorecard")

	// ErrInvalidEndpoint indicates an endpoint descriptor that cannot be polled.
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	// ErrAlreadyStarted indicates Start was called on a running poller.
	ErrAlreadyStarted = errors.New("poller already started")
)

// FetchError describes why a single fetch failed. It unwraps to its Kind
// sentinel and, when present, the underlying cause.
//
//	if errors.Is(res.Err, domain.ErrTimeout) { ... }
type FetchError struct {
	Kind   error
	URL    string
	Status int
	Err    error
}

// Error returns the human-readable failure reason. Timeouts read "timeout".
func (e *FetchError) Error() string {
	switch {
	case e.Kind == ErrTimeout:
		return "timeout"
	case e.Kind == ErrHTTPStatus:
		return fmt.Sprintf("HTTP %d", e.Status)
	case e.Err != nil && errors.Is(e.Err, e.Kind):
		return e.Err.Error()
	case e.Err != nil:
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewFetchError builds a FetchError of the given kind.
func NewFetchError(kind error, url string, err error) *FetchError {
	return &FetchError{Kind: kind, URL: url, Err: err}
}
