package stats

import (
	"context"
	"log/slog"
	"time"

	"nathanbeddoewebdev/homegrid/internal/logger"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

// Result is the outcome of refreshing one service.
type Result struct {
	ServiceID string
	Payload   Payload
	Err       error
}

// Refresher polls the services behind a home's widgets and records the
// payloads in a Cache.
type Refresher struct {
	Fetcher Fetcher
	Cache   *Cache

	// Interval applies to widgets without a refresh override.
	Interval time.Duration

	// Concurrency bounds in-flight fetches. Defaults to 4.
	Concurrency int

	Log *slog.Logger
}

// Interval returns the refresh interval of w given the home-wide default.
func Interval(w domain.Widget, homeDefault time.Duration) time.Duration {
	if w.RefreshIntervalOverride != nil && *w.RefreshIntervalOverride > 0 {
		return time.Duration(*w.RefreshIntervalOverride) * time.Second
	}
	return homeDefault
}

// Due returns the services that need a fetch at now, in widget order. A
// service shown by several widgets is polled at the shortest of their
// intervals. Widgets whose service is not in services are ignored.
func (r *Refresher) Due(widgets []domain.Widget, services map[string]domain.Service, now time.Time) []domain.Service {
	intervals := make(map[string]time.Duration)
	var order []string
	for _, w := range widgets {
		if _, ok := services[w.ServiceID]; !ok {
			continue
		}
		iv := Interval(w, r.Interval)
		cur, seen := intervals[w.ServiceID]
		if !seen {
			order = append(order, w.ServiceID)
			intervals[w.ServiceID] = iv
			continue
		}
		intervals[w.ServiceID] = min(cur, iv)
	}

	var due []domain.Service
	for _, id := range order {
		entry, ok := r.Cache.Peek(id)
		if ok && now.Sub(entry.FetchedAt) < intervals[id] {
			continue
		}
		due = append(due, services[id])
	}
	return due
}

// Refresh fetches services concurrently and stores each successful payload.
// A failing service does not stop the others; its error is reported in its
// Result. Results are in the order of services. The returned error is only
// set when ctx ends before every fetch completes.
func (r *Refresher) Refresh(ctx context.Context, services []domain.Service) ([]Result, error) {
	log := logger.OrDefault(r.Log)
	return r.each(ctx, services, func(ctx context.Context, svc domain.Service) (Payload, error) {
		p, err := r.Fetcher.Fetch(ctx, svc)
		if err != nil {
			return Payload{}, err
		}
		p.ServiceID = svc.ID
		if err := r.Cache.Put(p); err != nil {
			log.Warn("failed to cache stats", "service", svc.ID, "err", err)
		}
		return p, nil
	})
}

// Latest returns a payload per service through the cache: entries younger
// than the cache's fresh TTL are served as is, stale ones are served while
// a background fetch replaces them, and missing or expired ones are fetched.
// Results and the returned error follow Refresh.
func (r *Refresher) Latest(ctx context.Context, services []domain.Service) ([]Result, error) {
	return r.each(ctx, services, func(ctx context.Context, svc domain.Service) (Payload, error) {
		return r.Cache.GetOrFetch(ctx, svc.ID, func(ctx context.Context) (Payload, error) {
			return r.Fetcher.Fetch(ctx, svc)
		})
	})
}

// each runs fn for every service with bounded concurrency.
func (r *Refresher) each(ctx context.Context, services []domain.Service, fn func(context.Context, domain.Service) (Payload, error)) ([]Result, error) {
	log := logger.OrDefault(r.Log)
	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	results := make([]Result, len(services))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, svc := range services {
		g.Go(func() error {
			res := Result{ServiceID: svc.ID}
			p, err := fn(gctx, svc)
			if err != nil {
				res.Err = err
				log.Warn("stats fetch failed", "service", svc.ID, "err", err)
			} else {
				res.Payload = p
				log.Debug("stats ready", "service", svc.ID, "metrics", len(p.Metrics))
			}
			results[i] = res
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}

// RefreshDue runs Due and then Refresh for the services it selects.
func (r *Refresher) RefreshDue(ctx context.Context, widgets []domain.Widget, services map[string]domain.Service, now time.Time) ([]Result, error) {
	return r.Refresh(ctx, r.Due(widgets, services, now))
}
