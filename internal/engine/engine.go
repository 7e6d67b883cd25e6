// Package engine orchestrates concurrent, cache-backed search over the
// live Wikipedia link graph: five selectable strategies sharing one
// Fetcher, one Frontier policy per strategy, and a single control-loop
// goroutine per search that owns frontier and discovered-set mutation.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/wikirace/wikirace/internal/fetcher"
	"github.com/wikirace/wikirace/internal/similarity"
	"github.com/wikirace/wikirace/internal/wikiurl"
)

// Fetcher is the engine's view of the link-fetching dependency — exactly
// the method set of *fetcher.Fetcher, narrowed so tests can substitute a
// fake instead of issuing real HTTP requests.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) *fetcher.Result
}

// Strategy selects one of the five search variants.
type Strategy string

const (
	StrategyBFS           Strategy = "bfs"
	StrategyDFS           Strategy = "dfs"
	StrategyUniform       Strategy = "uniform"
	StrategyAStar         Strategy = "a_star"
	StrategyBidirectional Strategy = "bidirectional"
)

// Config carries the global caps every strategy obeys.
type Config struct {
	Timeout                 time.Duration
	MaxDepth                int
	MaxPages                int
	ConcurrentRequestsLimit int
	MaxQueueSize            int
}

// withDefaults fills in caps that have no meaningful zero value.
// Timeout and MaxDepth are deliberately left untouched: spec.md §8 gives
// MAX_DEPTH=0 and Timeout=0 their own mandated boundary behavior ([start]-
// or-not_found with no fetch, and immediate timeout with discovered=1), so
// a zero here must reach the control loop as a real zero, not get coerced
// into a default. config.Load is the only place that should decide what
// "unconfigured" means for those two; by the time a Config reaches New,
// its Timeout and MaxDepth are taken literally.
func (c Config) withDefaults() Config {
	if c.MaxPages <= 0 {
		c.MaxPages = 1000
	}
	if c.ConcurrentRequestsLimit <= 0 {
		c.ConcurrentRequestsLimit = 10
	}
	return c
}

// Result is what a search surfaces to its caller, win or lose: the path
// (on success), a log trail, and the telemetry tuple of spec.md §4.5.
type Result struct {
	Path         []string
	Logs         []string
	Elapsed      time.Duration
	Discovered   int
	DepthReached int
	Strategy     Strategy
}

// Engine runs searches against a shared Fetcher and Oracle.
type Engine struct {
	fetcher Fetcher
	oracle  similarity.Oracle
	cfg     Config
}

// New constructs an Engine. oracle may be nil; a nil oracle is replaced by
// the default lexical oracle (similarity.NewLexical).
func New(f Fetcher, oracle similarity.Oracle, cfg Config) *Engine {
	if oracle == nil {
		oracle = similarity.NewLexical()
	}
	return &Engine{fetcher: f, oracle: oracle, cfg: cfg.withDefaults()}
}

// Search runs one search from start to finish using strategy. Titles may
// be bare or full article URLs; the returned Path contains bare titles.
// A non-nil error is always a *SearchError; the accompanying Result (never
// nil) still carries Logs/Elapsed/Discovered for telemetry even on
// failure.
func (e *Engine) Search(ctx context.Context, start, finish string, strategy Strategy) (*Result, error) {
	begin := time.Now()
	res := &Result{Strategy: strategy}

	if start == "" || finish == "" {
		return res, badInput("start and finish titles are required")
	}

	startURL := wikiurl.Normalize(start)
	finishURL := wikiurl.Normalize(finish)
	if !wikiurl.IsArticleURL(startURL) {
		return res, badInput("start %q does not resolve to a valid article", start)
	}
	if !wikiurl.IsArticleURL(finishURL) {
		return res, badInput("finish %q does not resolve to a valid article", finish)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	run := &run{
		engine:    e,
		ctx:       ctx,
		startURL:  startURL,
		finishURL: finishURL,
		log:       func(format string, args ...interface{}) { res.Logs = append(res.Logs, fmt.Sprintf(format, args...)) },
	}

	var urlPath []string
	var discovered, depth int
	var err error

	switch strategy {
	case StrategyDFS:
		urlPath, discovered, depth, err = run.dfs()
	case StrategyUniform:
		urlPath, discovered, depth, err = run.uniformCost()
	case StrategyAStar:
		urlPath, discovered, depth, err = run.aStar()
	case StrategyBidirectional:
		urlPath, discovered, depth, err = run.bidirectional()
	case StrategyBFS, "":
		urlPath, discovered, depth, err = run.bfs()
	default:
		return res, badInput("unknown strategy %q", strategy)
	}

	res.Elapsed = time.Since(begin)
	res.Discovered = discovered
	res.DepthReached = depth

	if err != nil {
		slog.Warn("search did not complete", "strategy", strategy, "start", start, "finish", finish, "error", err)
		return res, err
	}

	res.Path = titlesFromURLs(urlPath)
	slog.Info("search complete", "strategy", strategy, "start", start, "finish", finish,
		"hops", len(res.Path)-1, "discovered", discovered, "elapsed", res.Elapsed)
	return res, nil
}

func titlesFromURLs(urls []string) []string {
	titles := make([]string, len(urls))
	for i, u := range urls {
		titles[i] = wikiurl.TitleFromURL(u)
	}
	return titles
}
