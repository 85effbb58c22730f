package domain

import "time"

// FetchResult is the outcome of one fetch: either a parsed Body (Success)
// or a non-nil Err (Failure).
type FetchResult struct {
	URL       string
	Body      Value
	Err       error
	FetchedAt time.Time
}

// Success builds a successful result.
func Success(url string, body Value, at time.Time) FetchResult {
	return FetchResult{URL: url, Body: body, FetchedAt: at}
}

// Failure builds a failed result.
func Failure(url string, err error, at time.Time) FetchResult {
	return FetchResult{URL: url, Err: err, FetchedAt: at}
}

// OK reports whether the result is a Success.
func (r FetchResult) OK() bool { return r.Err == nil }

// Reason returns the human-readable failure cause, or "" on success.
func (r FetchResult) Reason() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
