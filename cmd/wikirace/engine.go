package main

import (
	"fmt"

	"github.com/wikirace/wikirace/internal/backingstore"
	"github.com/wikirace/wikirace/internal/engine"
	"github.com/wikirace/wikirace/internal/fetcher"
	"github.com/wikirace/wikirace/internal/linkcache"
	"github.com/wikirace/wikirace/internal/similarity"
	"github.com/wikirace/wikirace/internal/telemetry"
)

// buildEngine wires the link cache, optional backing store, fetcher, and
// similarity oracle into a ready-to-use Engine, per spec.md §2's component
// dependency order. The returned Store is nil if no backing store path is
// configured; callers should Close it (if non-nil) when done.
func buildEngine() (*engine.Engine, *backingstore.Store, error) {
	var store *backingstore.Store
	var cacheOpts []linkcache.Option

	if cfg.Cache.BackingStorePath != "" {
		var err error
		store, err = backingstore.Open(cfg.Cache.BackingStorePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening backing store: %w", err)
		}
		cacheOpts = append(cacheOpts, linkcache.WithBackingStore(store))
	}

	cache := linkcache.New(cfg.Cache.TTL, cacheOpts...)

	f := fetcher.New(fetcher.Config{
		RateLimit:               cfg.Fetcher.RateLimit,
		RequestTimeout:          cfg.Fetcher.RequestTimeout,
		UserAgent:               cfg.Fetcher.UserAgent,
		RetryMax:                cfg.Fetcher.RetryMax,
		RetryBaseDelay:          cfg.Fetcher.RetryBaseDelay,
		ConcurrentRequestsLimit: cfg.Engine.ConcurrentRequestsLimit,
	}, cache)

	eng := engine.New(f, similarity.NewLexical(), engine.Config{
		Timeout:                 cfg.Engine.Timeout,
		MaxDepth:                cfg.Engine.MaxDepth,
		MaxPages:                cfg.Engine.MaxPages,
		ConcurrentRequestsLimit: cfg.Engine.ConcurrentRequestsLimit,
		MaxQueueSize:            cfg.Engine.MaxQueueSize,
	})

	return eng, store, nil
}

// buildMetricsSink opens the CSV telemetry sink at cfg.Metrics.Path, or
// returns a NullSink if metrics persistence isn't configured.
func buildMetricsSink() (telemetry.Sink, error) {
	if cfg.Metrics.Path == "" {
		return telemetry.NullSink{}, nil
	}
	return telemetry.NewCSVSink(cfg.Metrics.Path)
}
