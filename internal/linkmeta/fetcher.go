// Package linkmeta fetches and caches preview metadata for external links.
// Successful answers (including stable HTTP errors) are cached for five
// minutes; transient failures are recorded in a negative cache that holds
// retries off for one minute.
package linkmeta

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/starford/laguz/internal/apperr"
	"github.com/starford/laguz/internal/cache"
	"github.com/starford/laguz/internal/models"
)

const (
	// DefaultTTL is the success-cache lifetime.
	DefaultTTL = 5 * time.Minute
	// DefaultFailureTTL is the negative-cache back-off window.
	DefaultFailureTTL = time.Minute
	// DefaultTimeout bounds a single metadata fetch.
	DefaultTimeout = 5 * time.Second
	// DefaultUserAgent identifies us to remote servers.
	DefaultUserAgent = "laguz-preview/1.0"

	// maxBodySize caps how much of a page we read looking for metadata.
	maxBodySize = 10 * 1024 * 1024
)

// Fetcher retrieves link metadata over HTTP with positive and negative
// caching. Methods are safe for concurrent use.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	logger     *slog.Logger
	now        func() time.Time
	failureTTL time.Duration

	results *cache.TTL[*models.LinkMetadata]

	mu       sync.Mutex
	failures map[string]time.Time
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*fetcherConfig)

type fetcherConfig struct {
	client     *http.Client
	userAgent  string
	logger     *slog.Logger
	now        func() time.Time
	ttl        time.Duration
	failureTTL time.Duration
}

// WithHTTPClient replaces the HTTP client, for tests or custom transports.
// The client's own timeout is used as-is.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(c *fetcherConfig) {
		c.client = client
	}
}

// WithTimeout sets the per-fetch timeout on the default client.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		if c.client == nil {
			c.client = &http.Client{}
		}
		c.client.Timeout = timeout
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(c *fetcherConfig) {
		c.userAgent = ua
	}
}

// WithCacheTTL overrides the success-cache TTL.
func WithCacheTTL(ttl time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.ttl = ttl
	}
}

// WithFailureTTL overrides the negative-cache window.
func WithFailureTTL(ttl time.Duration) FetcherOption {
	return func(c *fetcherConfig) {
		c.failureTTL = ttl
	}
}

// WithNowFunc overrides the time source, for tests.
func WithNowFunc(now func() time.Time) FetcherOption {
	return func(c *fetcherConfig) {
		c.now = now
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(c *fetcherConfig) {
		c.logger = logger
	}
}

// NewFetcher creates a metadata fetcher.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	cfg := fetcherConfig{
		userAgent:  DefaultUserAgent,
		logger:     slog.Default(),
		now:        time.Now,
		ttl:        DefaultTTL,
		failureTTL: DefaultFailureTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: DefaultTimeout}
	}
	return &Fetcher{
		client:     cfg.client,
		userAgent:  cfg.userAgent,
		logger:     cfg.logger,
		now:        cfg.now,
		failureTTL: cfg.failureTTL,
		results:    cache.New(cfg.ttl, cache.WithNowFunc[*models.LinkMetadata](cfg.now)),
		failures:   make(map[string]time.Time),
	}
}

// Fetch returns metadata for rawURL, keyed by the exact URL string.
//
// A fresh cached answer is returned without a network call. A URL that
// failed within the back-off window returns apperr.ErrBackoff without a
// network call. A non-2xx response is not a failure: it produces a
// metadata value whose Error field carries the status, and that value is
// cached like any success. Only transport-level failures feed the
// negative cache.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*models.LinkMetadata, error) {
	if !isSupported(rawURL) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnsupportedURL, rawURL)
	}

	if meta, ok := f.results.Get(rawURL); ok {
		return meta, nil
	}

	if f.inBackoff(rawURL) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrBackoff, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("linkmeta: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		f.recordFailure(rawURL)
		f.logger.Warn("linkmeta: fetch failed",
			slog.String("url", rawURL),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("linkmeta: fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	domain := Domain(rawURL)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		meta := &models.LinkMetadata{
			URL:        rawURL,
			Domain:     domain,
			FaviconURL: FaviconURL(domain),
			Error: fmt.Sprintf("This page returned %d (%s)",
				resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
		f.results.Set(rawURL, meta)
		return meta, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		f.recordFailure(rawURL)
		return nil, fmt.Errorf("linkmeta: read body: %w", err)
	}

	doc := parseDocument(string(body))
	meta := &models.LinkMetadata{
		URL:         rawURL,
		Title:       doc.title(),
		Description: doc.description(),
		Image:       doc.image(rawURL),
		SiteName:    doc.siteName(),
		Domain:      domain,
		FaviconURL:  FaviconURL(domain),
	}

	f.results.Set(rawURL, meta)
	f.clearFailure(rawURL)
	return meta, nil
}

// inBackoff reports whether rawURL failed within the back-off window.
// Expired failure stamps are removed on the way out.
func (f *Fetcher) inBackoff(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	failedAt, ok := f.failures[rawURL]
	if !ok {
		return false
	}
	if f.now().Sub(failedAt) >= f.failureTTL {
		delete(f.failures, rawURL)
		return false
	}
	return true
}

func (f *Fetcher) recordFailure(rawURL string) {
	f.mu.Lock()
	f.failures[rawURL] = f.now()
	f.mu.Unlock()
}

func (f *Fetcher) clearFailure(rawURL string) {
	f.mu.Lock()
	delete(f.failures, rawURL)
	f.mu.Unlock()
}

// ClearCache drops both the success and failure caches.
func (f *Fetcher) ClearCache() {
	f.results.Clear()
	f.mu.Lock()
	f.failures = make(map[string]time.Time)
	f.mu.Unlock()
}
