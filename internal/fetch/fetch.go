// Package fetch retrieves repository pages over HTTP, optionally through a
// local page cache. A harvest walks a major portion of the document
// repository, so requests go through a rate limiter to keep the load on
// the server civil.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit is the default request rate against the repository.
	RateLimit = 10.0
)

// Fetcher is a rate-limited HTTP getter with an optional page cache.
type Fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *Cache
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// WithCache routes fetches through the given page cache.
func WithCache(c *Cache) Option {
	return func(f *Fetcher) {
		f.cache = c
	}
}

// WithRateLimit overrides the default request rate.
func WithRateLimit(perSecond float64) Option {
	return func(f *Fetcher) {
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get fetches a URL, serving and filling the cache when one is
// configured.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		body, ok, err := f.cache.Get(url)
		if err != nil {
			return nil, err
		}
		if ok {
			return body, nil
		}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetching %s: HTTP %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}

	if f.cache != nil {
		if err := f.cache.Put(url, body); err != nil {
			return nil, err
		}
	}
	return body, nil
}
