package dashboard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/poller"

	"golang.org/x/sync/errgroup"
)

// Options configures a Composer.
type Options struct {
	// BaseURL resolves relative panel endpoints.
	BaseURL string
	// Timeout bounds each fetch. Zero uses poller.DefaultTimeout.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Update is one delivered result for the panel at Index.
type Update struct {
	Index  int
	Result domain.FetchResult
}

type slot struct {
	last   *domain.FetchResult
	lastOK *domain.FetchResult
}

// Composer owns one Poller per panel. Pollers deliver into per-panel
// slots that never block, so a slow consumer cannot stall a poller and a
// consumer calling Stop cannot deadlock against a delivery. Consumers call
// Next (or Drain) and fold the updates into their Panel values.
type Composer struct {
	layout    Layout
	endpoints []domain.Endpoint
	pollers   []*poller.Poller
	logger    *slog.Logger

	mu      sync.Mutex
	pending []slot
	notify  chan struct{}

	done     chan struct{}
	stopOnce sync.Once
}

// New resolves every panel endpoint and prepares a stopped poller for each.
func New(layout Layout, f poller.Fetcher, opts Options) (*Composer, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Composer{
		layout:  layout,
		logger:  logger,
		pending: make([]slot, len(layout.Panels)),
		notify:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	for i, p := range layout.Panels {
		ep, err := p.Resolve(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("panel %d (%s): %w", i+1, p.Name(), err)
		}
		c.endpoints = append(c.endpoints, ep)
		c.pollers = append(c.pollers, poller.New(f,
			poller.WithTimeout(opts.Timeout),
			poller.WithLogger(logger),
			poller.WithName(p.Name()),
		))
	}
	return c, nil
}

// Layout returns the layout the composer was built from.
func (c *Composer) Layout() Layout { return c.layout }

// Endpoints returns the resolved descriptor of every panel, in layout order.
func (c *Composer) Endpoints() []domain.Endpoint {
	return append([]domain.Endpoint(nil), c.endpoints...)
}

// Panels returns the initial state of every panel, in layout order.
func (c *Composer) Panels() []Panel {
	out := make([]Panel, len(c.layout.Panels))
	for i, cfg := range c.layout.Panels {
		out[i] = NewPanel(cfg)
	}
	return out
}

// Start starts every panel's poller. If any fails to start, the ones
// already running are stopped.
func (c *Composer) Start() error {
	for i, p := range c.pollers {
		if err := p.Start(c.endpoints[i], c.receiver(i)); err != nil {
			for _, started := range c.pollers[:i] {
				started.Stop()
			}
			return fmt.Errorf("panel %d (%s): %w", i+1, c.layout.Panels[i].Name(), err)
		}
	}
	c.logger.Info("dashboard started", "panels", len(c.pollers))
	return nil
}

// Refresh restarts every poller, forcing an immediate fetch on each panel.
// Results still in flight from before the refresh are discarded.
func (c *Composer) Refresh() error {
	for _, p := range c.pollers {
		p.Stop()
	}
	return c.Start()
}

// Stop stops every poller and releases any goroutine blocked in Next.
// No updates are queued after Stop returns.
func (c *Composer) Stop() {
	c.stopOnce.Do(func() { close(c.done) })
	for _, p := range c.pollers {
		p.Stop()
	}
	c.logger.Info("dashboard stopped")
}

func (c *Composer) receiver(i int) func(domain.FetchResult) {
	return func(res domain.FetchResult) {
		c.mu.Lock()
		s := &c.pending[i]
		s.last = &res
		if res.OK() {
			s.lastOK = &res
		}
		c.mu.Unlock()

		select {
		case c.notify <- struct{}{}:
		default:
		}
	}
}

// Drain returns the queued updates without blocking. For each panel a
// success that was superseded by a later failure is returned before that
// failure, so applying updates in order leaves the success's data on
// screen alongside the failure indicator.
func (c *Composer) Drain() []Update {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []Update
	for i := range c.pending {
		s := &c.pending[i]
		if s.lastOK != nil && s.lastOK != s.last {
			out = append(out, Update{Index: i, Result: *s.lastOK})
		}
		if s.last != nil {
			out = append(out, Update{Index: i, Result: *s.last})
		}
		*s = slot{}
	}
	return out
}

// Next blocks until at least one update is queued. It returns false once
// ctx is done or the composer is stopped.
func (c *Composer) Next(ctx context.Context) ([]Update, bool) {
	for {
		if ups := c.Drain(); len(ups) > 0 {
			return ups, true
		}
		select {
		case <-c.notify:
		case <-ctx.Done():
			return nil, false
		case <-c.done:
			return nil, false
		}
	}
}

// Once fetches every panel a single time, concurrently, and returns the
// resulting panel states. Recurring panels are fetched once as well.
// Each fetch is bounded by the poller timeout; Once fails only if ctx ends
// before every panel has a result.
func (c *Composer) Once(ctx context.Context) ([]Panel, error) {
	panels := c.Panels()
	g, gctx := errgroup.WithContext(ctx)

	for i := range c.pollers {
		ep := domain.Endpoint{URL: c.endpoints[i].URL}
		p := c.pollers[i]
		g.Go(func() error {
			got := make(chan domain.FetchResult, 1)
			if err := p.Start(ep, func(res domain.FetchResult) { got <- res }); err != nil {
				return fmt.Errorf("panel %d (%s): %w", i+1, c.layout.Panels[i].Name(), err)
			}
			defer p.Stop()

			select {
			case res := <-got:
				panels[i] = panels[i].Apply(res)
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	}

	if err := g.Wait(); err != nil {
		return panels, err
	}
	return panels, nil
}
