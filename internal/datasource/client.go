// Package datasource issues GET requests against the accounting gateway and
// returns parsed JSON as a domain.FetchResult. It never retries; retry
// policy belongs to the poller.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/payload"
)

const (
	// maxBodyBytes is the largest response body accepted.
	maxBodyBytes = 16 << 20

	userAgent = "ironrod-dash"
)

// Client fetches JSON documents from the gateway.
type Client struct {
	client  *http.Client
	token   string
	maxBody int64
	now     func() time.Time
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// WithBearerToken attaches an Authorization header to every request.
func WithBearerToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client. The http.Client has no timeout of its own; the
// bounded wait comes from the context passed to Fetch.
func New(opts ...Option) *Client {
	c := &Client{
		client:  &http.Client{},
		maxBody: maxBodyBytes,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs one GET against url. Transport errors, non-2xx statuses,
// invalid JSON and context deadlines all produce a Failure result.
func (c *Client) Fetch(ctx context.Context, url string) domain.FetchResult {
	body, err := c.get(ctx, url)
	if err != nil {
		return domain.Failure(url, err, c.now())
	}
	return domain.Success(url, body, c.now())
}

func (c *Client) get(ctx context.Context, url string) (domain.Value, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Value{}, domain.NewFetchError(domain.ErrTransport, url, fmt.Errorf("failed to build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return domain.Value{}, classifyTransport(ctx, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused.
		_, _ = io.CopyN(io.Discard, resp.Body, 4<<10)
		return domain.Value{}, &domain.FetchError{
			Kind:   domain.ErrHTTPStatus,
			URL:    url,
			Status: resp.StatusCode,
		}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return domain.Value{}, classifyTransport(ctx, url, err)
	}
	if int64(len(data)) > c.maxBody {
		return domain.Value{}, domain.NewFetchError(domain.ErrParse, url,
			fmt.Errorf("body too large: exceeds %d bytes", c.maxBody))
	}

	v, err := payload.Parse(data)
	if err != nil {
		return domain.Value{}, domain.NewFetchError(domain.ErrParse, url, err)
	}
	return v, nil
}

// classifyTransport maps a client.Do or body read error onto the timeout
// or transport category.
func classifyTransport(ctx context.Context, url string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return domain.NewFetchError(domain.ErrTimeout, url, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return domain.NewFetchError(domain.ErrTimeout, url, err)
	}
	return domain.NewFetchError(domain.ErrTransport, url, err)
}
