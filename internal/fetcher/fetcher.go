// Package fetcher retrieves a Wikipedia page's outgoing article links,
// cache-first, with bounded concurrency, a shared rate limit, and retry
// with exponential backoff on transient failures.
package fetcher

import (
	"fmt"
	"sync"
	"time"

	"context"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"

	"github.com/wikirace/wikirace/internal/linkcache"
	"github.com/wikirace/wikirace/internal/parser"
)

// Config controls the Fetcher's HTTP behavior and retry policy.
type Config struct {
	RateLimit               float64
	RequestTimeout          time.Duration
	UserAgent               string
	RetryMax                int
	RetryBaseDelay          time.Duration
	ConcurrentRequestsLimit int
}

// Fetcher resolves page URLs to outgoing link lists, implementing
// get_links(page_url) -> link list. It never returns an error for a single
// page fetch; a terminal failure degrades to an empty link list with Err
// set so telemetry can still report it.
type Fetcher struct {
	collector *colly.Collector
	limiter   *rate.Limiter
	cache     *linkcache.Cache
	sem       chan struct{} // buffered semaphore; send acquires, receive releases
	retryMax  int
	retryBase time.Duration

	mu      sync.Mutex
	pending map[string]chan response
}

type response struct {
	statusCode int
	body       []byte
	err        error
}

// Result is the outcome of a single Fetch call.
type Result struct {
	PageURL string
	Links   []string
	Err     error
}

// New constructs a Fetcher. cache must be non-nil; it is consulted before
// every HTTP request and populated after every successful one.
func New(cfg Config, cache *linkcache.Cache) *Fetcher {
	burst := 50
	if cfg.RateLimit > 0 && cfg.RateLimit < float64(burst) {
		burst = int(cfg.RateLimit)
	}

	limit := cfg.ConcurrentRequestsLimit
	if limit <= 0 {
		limit = 10
	}

	f := &Fetcher{
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), burst),
		cache:     cache,
		sem:       make(chan struct{}, limit),
		retryMax:  cfg.RetryMax,
		retryBase: cfg.RetryBaseDelay,
		pending:   make(map[string]chan response),
	}
	if f.retryMax <= 0 {
		f.retryMax = 3
	}
	if f.retryBase <= 0 {
		f.retryBase = 2 * time.Second
	}

	c := colly.NewCollector(
		colly.UserAgent(cfg.UserAgent),
		colly.AllowedDomains("en.wikipedia.org"),
		colly.Async(true),
		// Retries and re-fetches after cache expiry visit the same URL again.
		colly.AllowURLRevisit(),
	)
	c.SetRequestTimeout(cfg.RequestTimeout)

	c.OnResponse(func(r *colly.Response) {
		body := make([]byte, len(r.Body))
		copy(body, r.Body)
		f.deliver(r.Request.URL.String(), response{statusCode: r.StatusCode, body: body})
	})
	c.OnError(func(r *colly.Response, err error) {
		f.deliver(r.Request.URL.String(), response{statusCode: r.StatusCode, err: err})
	})

	f.collector = c
	return f
}

func (f *Fetcher) deliver(pageURL string, resp response) {
	f.mu.Lock()
	ch, ok := f.pending[pageURL]
	f.mu.Unlock()
	if ok {
		ch <- resp
	}
}

// Fetch returns the outgoing article links of pageURL. pageURL must already
// be the canonical form (see the wikiurl package); Fetch does not
// canonicalize its input.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) *Result {
	if links, ok := f.cache.Get(pageURL); ok {
		return &Result{PageURL: pageURL, Links: links}
	}

	links, err := f.cache.GetOrFetch(ctx, pageURL, func(ctx context.Context) ([]string, error) {
		return f.fetchWithRetry(ctx, pageURL)
	})
	if err != nil {
		return &Result{PageURL: pageURL, Err: err}
	}
	return &Result{PageURL: pageURL, Links: links}
}

// fetchWithRetry implements the transient-failure retry policy: exponential
// backoff seeded at retryBase, up to retryMax attempts beyond the first.
// Non-transient failures (bad HTTP status) are not retried.
func (f *Fetcher) fetchWithRetry(ctx context.Context, pageURL string) ([]string, error) {
	var lastErr error

	for attempt := 0; attempt <= f.retryMax; attempt++ {
		if attempt > 0 {
			delay := f.retryBase * time.Duration(uint(1)<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		links, transient, err := f.fetchOnce(ctx, pageURL)
		if err == nil {
			return links, nil
		}
		lastErr = err
		if !transient {
			return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
		}
	}

	return nil, fmt.Errorf("fetching %s after %d attempts: %w", pageURL, f.retryMax+1, lastErr)
}

// fetchOnce acquires a concurrency permit (counted against the process-wide
// semaphore for this attempt, per the retry-counts-against-the-limit rule),
// issues one HTTP GET, and parses the response. transient reports whether
// the failure is worth retrying.
func (f *Fetcher) fetchOnce(ctx context.Context, pageURL string) (links []string, transient bool, err error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, true, fmt.Errorf("rate limit wait: %w", err)
	}

	ch := make(chan response, 1)
	f.mu.Lock()
	f.pending[pageURL] = ch
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		delete(f.pending, pageURL)
		f.mu.Unlock()
	}()

	// Acquiring the permit watches ctx too: a saturated semaphore must not
	// strand this call past cancellation. The permit is held until the
	// response is delivered or ctx is done (Visit on an async collector
	// returns before the request completes), so the limit bounds requests
	// actually in flight.
	select {
	case f.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, true, ctx.Err()
	}
	defer func() { <-f.sem }()

	go func() {
		// A synchronous Visit error (e.g. malformed URL) is routed to the
		// same channel OnResponse/OnError would otherwise deliver to.
		if err := f.collector.Visit(pageURL); err != nil {
			select {
			case ch <- response{err: err}:
			default:
			}
		}
	}()

	select {
	case resp := <-ch:
		if resp.err != nil {
			// colly reports non-2xx responses through OnError with the
			// status set; only failures without a response are transient.
			if resp.statusCode != 0 {
				return nil, false, fmt.Errorf("unexpected status %d: %w", resp.statusCode, resp.err)
			}
			return nil, true, resp.err
		}
		if resp.statusCode < 200 || resp.statusCode >= 300 {
			return nil, false, fmt.Errorf("unexpected status %d", resp.statusCode)
		}
		links, err := parser.ExtractLinksFromBytes(resp.body, pageURL)
		if err != nil {
			return nil, false, fmt.Errorf("parsing response: %w", err)
		}
		return links, false, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}
