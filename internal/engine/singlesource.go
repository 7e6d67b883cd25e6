package engine

import (
	"github.com/wikirace/wikirace/internal/frontier"
	"github.com/wikirace/wikirace/internal/wikiurl"
)

// scoreFunc computes a search state's frontier priority (lower is better).
// depth is len(path)-1 for the candidate successor; node is its URL.
type scoreFunc func(r *run, depth int, node string) float64

func scoreUniform(_ *run, depth int, _ string) float64 { return float64(depth) }

func (r *run) scoreAStar(depth int, node string) float64 {
	return float64(depth) + r.heuristic(node, r.finishURL)
}

// heuristic memoizes the (node, target) similarity lookup per search, per
// spec.md §4.4.4 ("h values are memoized per (node, finish) pair"); target
// is whichever endpoint this call direction is scoring toward (bidirectional
// search scores each direction against the opposite origin).
func (r *run) heuristic(node, target string) float64 {
	r.heuristicMu.Lock()
	defer r.heuristicMu.Unlock()
	if r.heuristicMemo == nil {
		r.heuristicMemo = make(map[string]float64)
	}
	key := node + "\x00" + target
	if v, ok := r.heuristicMemo[key]; ok {
		return v
	}
	titleA := wikiurl.TitleFromURL(node)
	titleB := wikiurl.TitleFromURL(target)
	h := -r.engine.oracle.Similarity(titleA, titleB)
	r.heuristicMemo[key] = h
	return h
}

// fetchOutcome is a completed fetch task result routed back to the control
// loop for integration. It carries the state that triggered the fetch so
// the loop can compute successor depth/path without re-deriving it.
type fetchOutcome struct {
	state frontier.State
	links []string
}

// singleSourceWith runs BFS (newFr=FIFO, score unused), uniform-cost, or A*
// (both newFr=Priority) from r.startURL toward r.finishURL. The frontier
// and discovered set are owned exclusively by this goroutine (the control
// loop); fetches run concurrently, each reporting back over its own
// channel, and the loop integrates their results in dispatch order, so
// completion order never affects which state is expanded next or which
// path first discovers a node.
func (r *run) singleSourceWith(newFr func(maxSize int) frontier.Frontier, score scoreFunc) ([]string, int, int, error) {
	fr := newFr(r.engine.cfg.MaxQueueSize)
	discovered := map[string][]string{r.startURL: {r.startURL}}
	maxDepthReached := 0

	fr.Push(frontier.State{Node: r.startURL, Path: []string{r.startURL}, Depth: 0, Score: 0})

	if r.startURL == r.finishURL {
		return []string{r.startURL}, 1, 0, nil
	}

	// limit bounds how many fetch tasks this search keeps outstanding at
	// once; the Fetcher applies its own process-wide semaphore on top of
	// this per-search one.
	limit := r.engine.cfg.ConcurrentRequestsLimit
	var queue []chan fetchOutcome // one channel per in-flight task, in dispatch order
	inFlight := 0

	dispatch := func(s frontier.State) {
		results := make(chan fetchOutcome, 1)
		queue = append(queue, results)
		inFlight++
		go func() {
			res := r.engine.fetcher.Fetch(r.ctx, s.Node)
			if res.Err != nil {
				r.log("fetch failed for %s: %v", wikiurl.TitleFromURL(s.Node), res.Err)
			}
			// A cancelled search must not block on a task nobody will read
			// from anymore; the in-flight fetch itself is left to
			// complete into the Link Cache on its own.
			select {
			case results <- fetchOutcome{state: s, links: res.Links}:
			case <-r.ctx.Done():
			}
		}()
	}

	for {
		select {
		case <-r.ctx.Done():
			return nil, len(discovered), maxDepthReached, &SearchError{Kind: ErrTimeout, Err: r.ctx.Err()}
		default:
		}

		for inFlight < limit && !fr.Empty() {
			s, _ := fr.Pop()
			if s.Depth > maxDepthReached {
				maxDepthReached = s.Depth
			}
			if s.Depth >= r.engine.cfg.MaxDepth {
				continue
			}
			dispatch(s)
		}

		if inFlight == 0 {
			if fr.Empty() {
				return nil, len(discovered), maxDepthReached, &SearchError{Kind: ErrNotFound}
			}
			continue
		}

		select {
		case out := <-queue[0]:
			queue = queue[1:]
			inFlight--
			for _, link := range out.links {
				if _, ok := discovered[link]; ok {
					continue
				}
				path := append(append([]string{}, out.state.Path...), link)
				discovered[link] = path

				if link == r.finishURL {
					return path, len(discovered), out.state.Depth + 1, nil
				}

				if len(discovered) >= r.engine.cfg.MaxPages {
					return nil, len(discovered), maxDepthReached, &SearchError{Kind: ErrNotFound, Err: errMaxPages}
				}

				fr.Push(frontier.State{
					Node:  link,
					Path:  path,
					Depth: out.state.Depth + 1,
					Score: score(r, out.state.Depth+1, link),
				})
			}
		case <-r.ctx.Done():
			return nil, len(discovered), maxDepthReached, &SearchError{Kind: ErrTimeout, Err: r.ctx.Err()}
		}
	}
}

func (r *run) bfs() ([]string, int, int, error) {
	return r.singleSourceWith(frontier.NewFIFO, scoreUniform)
}

func (r *run) uniformCost() ([]string, int, int, error) {
	return r.singleSourceWith(frontier.NewPriority, scoreUniform)
}

func (r *run) aStar() ([]string, int, int, error) {
	return r.singleSourceWith(frontier.NewPriority, func(r *run, depth int, node string) float64 {
		return r.scoreAStar(depth, node)
	})
}
