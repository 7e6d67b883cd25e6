package engine

import "github.com/wikirace/wikirace/internal/frontier"

// direction is one half of a bidirectional search: its own frontier and
// discovered map, rooted at its own origin.
type direction struct {
	frontier   frontier.Frontier
	discovered map[string][]string
	origin     string
}

// bidirectional runs the forward search from r.startURL and the backward
// search from r.finishURL, alternating one expansion step per direction
// per outer iteration, per spec.md §4.4.5. The backward search reuses
// forward-direction link extraction (the Fetcher has no notion of inbound
// links), an acknowledged approximation: it discovers pages that happen to
// link onward from finish, not pages that link to it.
func (r *run) bidirectional() ([]string, int, int, error) {
	if r.startURL == r.finishURL {
		return []string{r.startURL}, 1, 0, nil
	}

	newFr := r.bidirectionalFrontierFactory()

	fwd := &direction{
		frontier:   newFr(),
		discovered: map[string][]string{r.startURL: {r.startURL}},
		origin:     r.startURL,
	}
	fwd.frontier.Push(frontier.State{Node: r.startURL, Path: []string{r.startURL}, Depth: 0})

	bwd := &direction{
		frontier:   newFr(),
		discovered: map[string][]string{r.finishURL: {r.finishURL}},
		origin:     r.finishURL,
	}
	bwd.frontier.Push(frontier.State{Node: r.finishURL, Path: []string{r.finishURL}, Depth: 0})

	maxDepthReached := 0
	totalDiscovered := func() int {
		return len(fwd.discovered) + len(bwd.discovered) - overlapCount(fwd.discovered, bwd.discovered)
	}

	for !fwd.frontier.Empty() || !bwd.frontier.Empty() {
		select {
		case <-r.ctx.Done():
			return nil, totalDiscovered(), maxDepthReached, &SearchError{Kind: ErrTimeout, Err: r.ctx.Err()}
		default:
		}

		if meeting, depth, err := r.stepDirection(fwd, bwd); err != nil {
			return nil, totalDiscovered(), maxDepthReached, err
		} else if meeting != "" {
			path := joinAtMeeting(fwd.discovered[meeting], bwd.discovered[meeting])
			return path, totalDiscovered(), depth, nil
		} else if depth > maxDepthReached {
			maxDepthReached = depth
		}

		if meeting, depth, err := r.stepDirection(bwd, fwd); err != nil {
			return nil, totalDiscovered(), maxDepthReached, err
		} else if meeting != "" {
			path := joinAtMeeting(fwd.discovered[meeting], bwd.discovered[meeting])
			return path, totalDiscovered(), depth, nil
		} else if depth > maxDepthReached {
			maxDepthReached = depth
		}

		if totalDiscovered() >= r.engine.cfg.MaxPages {
			return nil, totalDiscovered(), maxDepthReached, &SearchError{Kind: ErrNotFound, Err: errMaxPages}
		}
	}

	return nil, totalDiscovered(), maxDepthReached, &SearchError{Kind: ErrNotFound}
}

// bidirectionalFrontierFactory returns an informed min-priority frontier
// keyed by the oracle's similarity to the opposite origin, per spec.md
// §4.4.5's "informed variant". An Engine always holds an oracle, so both
// directions always use this frontier; no FIFO variant is built here.
func (r *run) bidirectionalFrontierFactory() func() frontier.Frontier {
	return func() frontier.Frontier { return frontier.NewPriority(r.engine.cfg.MaxQueueSize) }
}

// stepDirection pops exactly one node from mine, fetches its outgoing
// links, and records newly discovered successors into mine's discovered
// map. It returns the meeting node (if any successor is already present in
// other's discovered map) and the depth reached by this step.
func (r *run) stepDirection(mine, other *direction) (meeting string, depth int, err error) {
	if mine.frontier.Empty() {
		return "", 0, nil
	}

	s, _ := mine.frontier.Pop()
	if s.Depth >= r.engine.cfg.MaxDepth {
		return "", s.Depth, nil
	}

	res := r.engine.fetcher.Fetch(r.ctx, s.Node)
	if res.Err != nil {
		r.log("fetch failed for %s: %v", s.Node, res.Err)
	}

	var meetings []string
	for _, link := range res.Links {
		if _, ok := mine.discovered[link]; ok {
			continue
		}
		path := append(append([]string{}, s.Path...), link)
		mine.discovered[link] = path

		if _, ok := other.discovered[link]; ok {
			meetings = append(meetings, link)
			continue
		}

		mine.frontier.Push(frontier.State{
			Node:  link,
			Path:  path,
			Depth: s.Depth + 1,
			Score: r.heuristic(link, other.origin),
		})
	}

	if len(meetings) == 0 {
		return "", s.Depth + 1, nil
	}

	// Tie-break: minimize len(forward_path) + len(backward_path).
	best := meetings[0]
	bestLen := len(mine.discovered[best]) + len(other.discovered[best])
	for _, m := range meetings[1:] {
		total := len(mine.discovered[m]) + len(other.discovered[m])
		if total < bestLen {
			best, bestLen = m, total
		}
	}
	return best, s.Depth + 1, nil
}

// joinAtMeeting stitches the forward path (start -> m) to the reversed
// backward path (finish -> m) with m's duplicate dropped, per spec.md
// §4.4.5.
func joinAtMeeting(forwardPath, backwardPath []string) []string {
	result := append([]string{}, forwardPath...)
	for i := len(backwardPath) - 2; i >= 0; i-- {
		result = append(result, backwardPath[i])
	}
	return result
}

func overlapCount(a, b map[string][]string) int {
	n := 0
	for k := range a {
		if _, ok := b[k]; ok {
			n++
		}
	}
	return n
}
