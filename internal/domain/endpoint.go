package domain

import (
	"fmt"
	"time"
)

// Endpoint describes what a poller fetches and how often. A nil
// PollInterval means fetch once.
type Endpoint struct {
	URL          string
	PollInterval *time.Duration
}

// Recurring reports whether the endpoint is polled on a timer.
func (e Endpoint) Recurring() bool { return e.PollInterval != nil }

// Validate checks the descriptor invariants.
func (e Endpoint) Validate() error {
	if e.URL == "" {
		return fmt.Errorf("%w: url is required", ErrInvalidEndpoint)
	}
	if e.PollInterval != nil && *e.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive, got %v", ErrInvalidEndpoint, *e.PollInterval)
	}
	return nil
}

// EveryMillis returns a pointer to ms milliseconds, for building recurring
// endpoints from integer configuration.
func EveryMillis(ms int) *time.Duration {
	d := time.Duration(ms) * time.Millisecond
	return &d
}
