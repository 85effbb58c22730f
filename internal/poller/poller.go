// Package poller repeatedly fetches an endpoint and hands every result to a
// subscriber. Fetches are not serialized against the timer: if a fetch is
// still outstanding when the next tick fires both are delivered, in the
// order they complete. Each Start opens a new generation; results from an
// older generation are discarded, so nothing is delivered after Stop.
package poller

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/retry"
)

// DefaultTimeout bounds a single fetch when no WithTimeout option is given.
const DefaultTimeout = 5 * time.Second

// Fetcher performs one fetch. *datasource.Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) domain.FetchResult
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) domain.FetchResult

func (f FetcherFunc) Fetch(ctx context.Context, url string) domain.FetchResult { return f(ctx, url) }

// Poller owns one endpoint's timer and its most recent FetchResult.
type Poller struct {
	fetcher   Fetcher
	timeout   time.Duration
	onceRetry retry.Config
	logger    *slog.Logger
	name      string

	// mu serializes deliveries against Start/Stop. It is held while the
	// subscriber runs, which is how Stop guarantees no delivery after it
	// returns.
	mu       sync.Mutex
	running  bool
	gen      uint64
	onResult func(domain.FetchResult)
	cancel   context.CancelFunc
	task     *Task

	slotMu sync.Mutex
	latest *domain.FetchResult

	inflight sync.WaitGroup
}

// Option configures a Poller.
type Option func(*Poller)

// WithTimeout sets the bounded wait for each fetch.
func WithTimeout(d time.Duration) Option {
	return func(p *Poller) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// WithFetchOnceRetry sets the retry policy applied to fetch-once
// endpoints. Recurring endpoints never retry inside a tick.
func WithFetchOnceRetry(cfg retry.Config) Option {
	return func(p *Poller) { p.onceRetry = cfg }
}

// WithLogger sets the logger used for fetch outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithName labels log lines with a panel name.
func WithName(name string) Option {
	return func(p *Poller) { p.name = name }
}

// New creates a stopped Poller.
func New(f Fetcher, opts ...Option) *Poller {
	p := &Poller{
		fetcher:   f,
		timeout:   DefaultTimeout,
		onceRetry: retry.DefaultConfig(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start performs one fetch right away and, for recurring endpoints,
// schedules another every PollInterval. Every result is passed to
// onResult. onResult runs on a poller goroutine and must not call Stop.
func (p *Poller) Start(ep domain.Endpoint, onResult func(domain.FetchResult)) error {
	if err := ep.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return domain.ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.running = true
	p.gen++
	p.onResult = onResult
	p.cancel = cancel
	gen := p.gen

	p.dispatch(ctx, gen, ep)
	if ep.Recurring() {
		p.task = Every(*ep.PollInterval, func() { p.dispatch(ctx, gen, ep) })
	}

	p.logger.Debug("poller started", "panel", p.name, "url", ep.URL, "generation", gen, "recurring", ep.Recurring())
	return nil
}

// Stop cancels the timer and any in-flight fetch. Once Stop returns the
// subscriber is not called again, even for a fetch that completes later.
// Stop is idempotent.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.gen++
	p.cancel()
	task := p.task
	p.task = nil
	p.onResult = nil
	p.mu.Unlock()

	// The task callback never takes mu, so waiting here cannot deadlock.
	task.Cancel()
	p.logger.Debug("poller stopped", "panel", p.name)
}

// Running reports whether the poller has been started and not stopped.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Latest returns the most recently delivered result, if any.
func (p *Poller) Latest() (domain.FetchResult, bool) {
	p.slotMu.Lock()
	defer p.slotMu.Unlock()
	if p.latest == nil {
		return domain.FetchResult{}, false
	}
	return *p.latest, true
}

// Wait blocks until every dispatched fetch has finished, delivered or not.
func (p *Poller) Wait() {
	p.inflight.Wait()
}

func (p *Poller) dispatch(ctx context.Context, gen uint64, ep domain.Endpoint) {
	p.inflight.Add(1)
	go func() {
		defer p.inflight.Done()
		res := p.fetch(ctx, ep)
		p.deliver(gen, res)
	}()
}

func (p *Poller) fetch(ctx context.Context, ep domain.Endpoint) domain.FetchResult {
	once := func() domain.FetchResult {
		fctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.fetcher.Fetch(fctx, ep.URL)
	}

	if ep.Recurring() {
		return once()
	}

	var res domain.FetchResult
	_ = retry.Do(ctx, p.onceRetry, retry.IsRetryable, func() error {
		res = once()
		return res.Err
	})
	if res.FetchedAt.IsZero() && res.Err == nil {
		// ctx was cancelled before the first attempt; Stop already ran.
		res = domain.Failure(ep.URL, context.Canceled, time.Now())
	}
	return res
}

func (p *Poller) deliver(gen uint64, res domain.FetchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || p.gen != gen {
		p.logger.Debug("discarding stale result", "panel", p.name, "url", res.URL, "generation", gen)
		return
	}

	p.slotMu.Lock()
	p.latest = &res
	p.slotMu.Unlock()

	if res.OK() {
		p.logger.Debug("fetch succeeded", "panel", p.name, "url", res.URL, "generation", gen)
	} else {
		p.logger.Warn("fetch failed", "panel", p.name, "url", res.URL, "generation", gen, "reason", res.Reason())
	}

	if p.onResult != nil {
		p.onResult(res)
	}
}
