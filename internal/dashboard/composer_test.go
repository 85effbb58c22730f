package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"ironrod/dash/internal/datasource"
	"ironrod/dash/internal/domain"
	"ironrod/dash/internal/poller"
)

func gateway(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/qbo/pl", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2024-01","total":100},{"date":"2024-02","total":120}]`))
	})
	mux.HandleFunc("/api/qbo/bs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	mux.HandleFunc("/api/qbo/scorecard/weekly", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"dates":["W1","W2"],"metrics":[{"rev":10},{"rev":12,"cost":3}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testLayout() Layout {
	return Layout{Panels: []PanelConfig{
		{Title: "P&L", Kind: KindLine, Endpoint: "/api/qbo/pl", XKey: "date", DataKey: "total"},
		{Title: "BS", Kind: KindBar, Endpoint: "/api/qbo/bs", XKey: "account", DataKey: "total"},
		{Title: "Scorecard", Kind: KindScorecard, Endpoint: "/api/qbo/scorecard/weekly"},
	}}
}

func TestComposer_PanelsAreIndependent(t *testing.T) {
	srv := gateway(t)
	c, err := New(testLayout(), datasource.New(), Options{BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	panels := c.Panels()
	seen := map[int]bool{}
	for len(seen) < len(panels) {
		ups, ok := c.Next(ctx)
		if !ok {
			t.Fatalf("timed out waiting for panels, saw %v", seen)
		}
		for _, u := range ups {
			panels[u.Index] = panels[u.Index].Apply(u.Result)
			seen[u.Index] = true
		}
	}

	if !panels[0].Loaded || len(panels[0].Points) != 2 {
		t.Errorf("P&L panel should have loaded: %+v", panels[0])
	}
	if panels[1].Loaded || panels[1].LastErr == nil || panels[1].LastErr.Error() != "HTTP 404" {
		t.Errorf("BS panel should show HTTP 404, got loaded=%v err=%v", panels[1].Loaded, panels[1].LastErr)
	}
	if !panels[2].Loaded || len(panels[2].Snapshot.Dates) != 2 {
		t.Errorf("scorecard panel should have loaded: %+v", panels[2])
	}
}

func TestComposer_NextReturnsAfterStop(t *testing.T) {
	block := make(chan struct{})
	f := poller.FetcherFunc(func(ctx context.Context, url string) domain.FetchResult {
		select {
		case <-block:
		case <-ctx.Done():
		}
		return domain.Failure(url, ctx.Err(), time.Now())
	})
	defer close(block)

	c, err := New(testLayout(), f, Options{BaseURL: "http://gw.test", Timeout: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	done := make(chan bool)
	go func() {
		_, ok := c.Next(context.Background())
		done <- ok
	}()

	c.Stop()
	select {
	case ok := <-done:
		if ok {
			t.Error("Next returned updates after Stop")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Next did not return after Stop")
	}
	if ups := c.Drain(); len(ups) != 0 {
		t.Errorf("updates queued after Stop: %+v", ups)
	}
}

func TestComposer_DrainKeepsSupersededSuccess(t *testing.T) {
	c, err := New(testLayout(), poller.FetcherFunc(nil), Options{BaseURL: "http://gw.test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	recv := c.receiver(0)
	recv(domain.Success("u", mustParse(t, `[{"date":"a","total":1}]`), t0))
	recv(domain.Failure("u", domain.NewFetchError(domain.ErrTimeout, "u", nil), t0.Add(time.Second)))

	ups := c.Drain()
	if len(ups) != 2 {
		t.Fatalf("expected success then failure, got %d updates", len(ups))
	}
	if !ups[0].Result.OK() || ups[1].Result.OK() {
		t.Fatalf("wrong order: %+v", ups)
	}

	p := c.Panels()[0]
	for _, u := range ups {
		p = p.Apply(u.Result)
	}
	if !p.Stale() || len(p.Points) != 1 {
		t.Errorf("expected stale data after drain, got %+v", p)
	}

	if ups := c.Drain(); len(ups) != 0 {
		t.Errorf("second drain should be empty, got %+v", ups)
	}
}

func TestComposer_Once(t *testing.T) {
	srv := gateway(t)
	c, err := New(testLayout(), datasource.New(), Options{BaseURL: srv.URL, Timeout: time.Second})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	panels, err := c.Once(context.Background())
	if err != nil {
		t.Fatalf("Once: %v", err)
	}
	if !panels[0].Loaded || !panels[2].Loaded {
		t.Errorf("expected P&L and scorecard loaded: %+v", panels)
	}
	if !errors.Is(panels[1].LastErr, domain.ErrHTTPStatus) {
		t.Errorf("expected BS panel HTTP failure, got %v", panels[1].LastErr)
	}
}

func TestComposer_RefreshFetchesAgain(t *testing.T) {
	var mu sync.Mutex
	calls := map[string]int{}
	f := poller.FetcherFunc(func(ctx context.Context, url string) domain.FetchResult {
		mu.Lock()
		calls[url]++
		mu.Unlock()
		return domain.Success(url, domain.Array(), time.Now())
	})

	l := Layout{Panels: []PanelConfig{{Kind: KindLine, Endpoint: "/pl", XKey: "d", DataKey: "v"}}}
	c, err := New(l, f, Options{BaseURL: "http://gw.test"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, ok := c.Next(ctx); !ok {
		t.Fatal("no initial update")
	}
	if err := c.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, ok := c.Next(ctx); !ok {
		t.Fatal("no update after refresh")
	}

	mu.Lock()
	defer mu.Unlock()
	if calls["http://gw.test/pl"] != 2 {
		t.Errorf("expected 2 fetches, got %v", calls)
	}
}

func TestNew_RejectsUnresolvableEndpoint(t *testing.T) {
	_, err := New(testLayout(), poller.FetcherFunc(nil), Options{})
	if !errors.Is(err, domain.ErrInvalidEndpoint) {
		t.Fatalf("expected ErrInvalidEndpoint, got %v", err)
	}
	if !strings.Contains(err.Error(), "P&L") {
		t.Errorf("error should name the panel: %v", err)
	}
}
