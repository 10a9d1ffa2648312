package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"nathanbeddoewebdev/homegrid/internal/retry"
	"nathanbeddoewebdev/homegrid/internal/services/auth"
	"nathanbeddoewebdev/homegrid/internal/widget/domain"
)

// ErrNoURL is returned for services configured without a stats endpoint.
var ErrNoURL = errors.New("stats: service has no url")

const maxBodyBytes = 1 << 20

// Fetcher retrieves the current metrics of one service.
type Fetcher interface {
	Fetch(ctx context.Context, svc domain.Service) (Payload, error)
}

// HTTPFetcher polls a service's URL, which must answer with
//
//	{"metrics": {"cpuPercent": 12.5, "runningCount": 4}}
//
// Keys outside the service kind's catalog are discarded.
type HTTPFetcher struct {
	Client *http.Client
	Tokens auth.Store
	Retry  retry.Config
}

// NewHTTPFetcher returns a fetcher with a 10s client timeout and the
// default retry policy.
func NewHTTPFetcher(tokens auth.Store) *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{Timeout: 10 * time.Second},
		Tokens: tokens,
		Retry:  retry.DefaultConfig(),
	}
}

type response struct {
	Metrics map[string]float64 `json:"metrics"`
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, svc domain.Service) (Payload, error) {
	if svc.URL == "" {
		return Payload{}, fmt.Errorf("%w: %s", ErrNoURL, svc.ID)
	}

	token, err := auth.TokenOrEmpty(f.Tokens, svc.ID)
	if err != nil {
		return Payload{}, fmt.Errorf("stats: failed to read token for %s: %w", svc.ID, err)
	}

	var resp response
	err = retry.Do(ctx, f.Retry, retry.IsRetryable, func() error {
		resp, err = f.get(ctx, svc.URL, token)
		return err
	})
	if err != nil {
		return Payload{}, fmt.Errorf("stats: fetch %s: %w", svc.ID, err)
	}

	return Payload{
		ServiceID: svc.ID,
		Metrics:   keepCatalog(svc.Kind, resp.Metrics),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (f *HTTPFetcher) get(ctx context.Context, url, token string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return response{}, err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	res, err := client.Do(req)
	if err != nil {
		return response{}, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, maxBodyBytes))
		return response{}, &retry.StatusError{Code: res.StatusCode, URL: url}
	}

	var out response
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodyBytes)).Decode(&out); err != nil {
		return response{}, fmt.Errorf("invalid stats response: %w", err)
	}
	return out, nil
}

func keepCatalog(kind domain.ServiceKind, metrics map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, key := range domain.CatalogKeys(kind) {
		if v, ok := metrics[key]; ok {
			out[key] = v
		}
	}
	return out
}
