package stats

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"github.com/google/go-cmp/cmp"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
}

func (f *fakeFetcher) Fetch(ctx context.Context, svc domain.Service) (Payload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, svc.ID)
	f.mu.Unlock()
	if err := f.fail[svc.ID]; err != nil {
		return Payload{}, err
	}
	return Payload{Metrics: map[string]float64{"cpuPercent": 1}, FetchedAt: time.Now()}, nil
}

func intPtr(n int) *int { return &n }

func serviceMap(ids ...string) map[string]domain.Service {
	m := make(map[string]domain.Service, len(ids))
	for _, id := range ids {
		m[id] = domain.Service{ID: id, Kind: domain.KindHypervisor}
	}
	return m
}

func serviceIDs(svcs []domain.Service) []string {
	out := make([]string, len(svcs))
	for i, s := range svcs {
		out[i] = s.ID
	}
	return out
}

func TestInterval(t *testing.T) {
	w := domain.Widget{}
	if got := Interval(w, time.Minute); got != time.Minute {
		t.Errorf("Interval without override = %v, want 1m", got)
	}
	w.RefreshIntervalOverride = intPtr(5)
	if got := Interval(w, time.Minute); got != 5*time.Second {
		t.Errorf("Interval with override = %v, want 5s", got)
	}
	w.RefreshIntervalOverride = intPtr(0)
	if got := Interval(w, time.Minute); got != time.Minute {
		t.Errorf("Interval with zero override = %v, want 1m", got)
	}
}

func TestDue(t *testing.T) {
	now := time.Now()
	cache := NewCache(t.TempDir())
	put := func(id string, age time.Duration) {
		t.Helper()
		if err := cache.Put(Payload{ServiceID: id, FetchedAt: now.Add(-age)}); err != nil {
			t.Fatal(err)
		}
	}
	put("recent", 10*time.Second)
	put("old", 2*time.Minute)
	put("fast", 10*time.Second)
	put("shared", 20*time.Second)

	r := &Refresher{Cache: cache, Interval: time.Minute}
	widgets := []domain.Widget{
		{ID: "1", ServiceID: "recent"},
		{ID: "2", ServiceID: "old"},
		{ID: "3", ServiceID: "never"},
		{ID: "4", ServiceID: "fast", RefreshIntervalOverride: intPtr(5)},
		{ID: "5", ServiceID: "orphan"},
		{ID: "6", ServiceID: "shared"},
		{ID: "7", ServiceID: "shared", RefreshIntervalOverride: intPtr(15)},
		{ID: "8", ServiceID: "old"},
	}

	got := serviceIDs(r.Due(widgets, serviceMap("recent", "old", "never", "fast", "shared"), now))
	want := []string{"old", "never", "fast", "shared"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Due (-want +got):\n%s", diff)
	}
}

func TestRefresh_CachesAndReportsErrors(t *testing.T) {
	boom := errors.New("boom")
	fetcher := &fakeFetcher{fail: map[string]error{"bad": boom}}
	cache := NewCache(t.TempDir())
	r := &Refresher{Fetcher: fetcher, Cache: cache, Concurrency: 2, Log: logger.Discard()}

	svcs := []domain.Service{{ID: "a"}, {ID: "bad"}, {ID: "c"}}
	results, err := r.Refresh(context.Background(), svcs)
	if err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, id := range []string{"a", "bad", "c"} {
		if results[i].ServiceID != id {
			t.Errorf("result %d is %q, want %q", i, results[i].ServiceID, id)
		}
	}
	if !errors.Is(results[1].Err, boom) {
		t.Errorf("expected boom for bad, got %v", results[1].Err)
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("unexpected errors: %v, %v", results[0].Err, results[2].Err)
	}

	if _, ok := cache.Peek("a"); !ok {
		t.Error("expected a to be cached")
	}
	if _, ok := cache.Peek("bad"); ok {
		t.Error("failed fetch should not be cached")
	}
}

func TestRefreshDue_SkipsFresh(t *testing.T) {
	fetcher := &fakeFetcher{}
	cache := NewCache(t.TempDir())
	r := &Refresher{Fetcher: fetcher, Cache: cache, Interval: time.Hour, Log: logger.Discard()}

	widgets := []domain.Widget{{ID: "1", ServiceID: "pve"}}
	services := serviceMap("pve")

	if _, err := r.RefreshDue(context.Background(), widgets, services, time.Now()); err != nil {
		t.Fatal(err)
	}
	if _, err := r.RefreshDue(context.Background(), widgets, services, time.Now()); err != nil {
		t.Fatal(err)
	}
	if len(fetcher.calls) != 1 {
		t.Errorf("expected 1 fetch, got %d", len(fetcher.calls))
	}
}

func TestRefresh_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &Refresher{Fetcher: &fakeFetcher{}, Cache: NewCache(t.TempDir()), Log: logger.Discard()}
	if _, err := r.Refresh(ctx, []domain.Service{{ID: "a"}}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestLatest_ServesCacheAndFetchesMissing(t *testing.T) {
	fetcher := &fakeFetcher{fail: map[string]error{"broken": errors.New("unreachable")}}
	cache := CacheWithTTLs(t.TempDir(), time.Minute, time.Hour)
	now := time.Now()
	for id, age := range map[string]time.Duration{"fresh": 10 * time.Second, "stale": 10 * time.Minute} {
		p := Payload{ServiceID: id, Metrics: map[string]float64{"cpuPercent": 7}, FetchedAt: now.Add(-age)}
		if err := cache.Put(p); err != nil {
			t.Fatal(err)
		}
	}
	r := &Refresher{Fetcher: fetcher, Cache: cache, Log: logger.Discard()}

	services := []domain.Service{{ID: "fresh"}, {ID: "stale"}, {ID: "missing"}, {ID: "broken"}}
	results, err := r.Latest(context.Background(), services)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	cache.Wait()

	got := make(map[string]float64)
	for _, res := range results {
		if res.Err != nil {
			got[res.ServiceID] = -1
			continue
		}
		got[res.ServiceID] = res.Payload.Metrics["cpuPercent"]
	}
	want := map[string]float64{"fresh": 7, "stale": 7, "missing": 1, "broken": -1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("served values (-want +got):\n%s", diff)
	}

	fetcher.mu.Lock()
	calls := append([]string(nil), fetcher.calls...)
	fetcher.mu.Unlock()
	sort.Strings(calls)
	if diff := cmp.Diff([]string{"broken", "missing", "stale"}, calls); diff != "" {
		t.Errorf("fetched services (-want +got):\n%s", diff)
	}

	entry, ok := cache.Peek("stale")
	if !ok || entry.Data.Metrics["cpuPercent"] != 1 {
		t.Errorf("expected stale entry to be revalidated, got %+v", entry)
	}
}
