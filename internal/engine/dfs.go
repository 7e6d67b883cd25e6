package engine

// dfs runs depth-limited DFS for increasing depth limits d = 1..MaxDepth,
// each with its own fresh visited set, per spec.md §4.4.2. Fetches are
// issued sequentially — DFS explores one branch at a time by nature, so
// there is no batch of independent frontier states to fan out
// concurrently the way singleSourceWith does for BFS/uniform-cost/A*.
func (r *run) dfs() ([]string, int, int, error) {
	totalDiscovered := map[string]bool{r.startURL: true}
	maxDepthReached := 0

	if r.startURL == r.finishURL {
		return []string{r.startURL}, 1, 0, nil
	}

	for limit := 1; limit <= r.engine.cfg.MaxDepth; limit++ {
		select {
		case <-r.ctx.Done():
			return nil, len(totalDiscovered), maxDepthReached, &SearchError{Kind: ErrTimeout, Err: r.ctx.Err()}
		default:
		}

		visited := map[string]bool{r.startURL: true}
		path, depth, err := r.dfsLimited(r.startURL, []string{r.startURL}, limit, visited, totalDiscovered)
		if depth > maxDepthReached {
			maxDepthReached = depth
		}
		if err != nil {
			return nil, len(totalDiscovered), maxDepthReached, err
		}
		if path != nil {
			return path, len(totalDiscovered), maxDepthReached, nil
		}
	}

	return nil, len(totalDiscovered), maxDepthReached, &SearchError{Kind: ErrNotFound}
}

// dfsLimited explores depth-first from node, bounded by limit. visited
// marks are removed on backtrack so the same node can be reached again at
// a different depth on another branch, per spec.md §4.4.2. It returns a
// non-nil path on success, or (nil, maxDepthSeen, nil) if the branch is
// exhausted without reaching finish.
func (r *run) dfsLimited(node string, path []string, limit int, visited map[string]bool, totalDiscovered map[string]bool) ([]string, int, error) {
	depth := len(path) - 1
	if node == r.finishURL {
		return path, depth, nil
	}
	if depth >= limit {
		return nil, depth, nil
	}

	select {
	case <-r.ctx.Done():
		return nil, depth, &SearchError{Kind: ErrTimeout, Err: r.ctx.Err()}
	default:
	}

	res := r.engine.fetcher.Fetch(r.ctx, node)
	if res.Err != nil {
		r.log("fetch failed for %s: %v", node, res.Err)
	}

	maxDepthSeen := depth
	for _, link := range res.Links {
		if visited[link] {
			continue
		}
		if !totalDiscovered[link] {
			totalDiscovered[link] = true
			if len(totalDiscovered) > r.engine.cfg.MaxPages {
				return nil, maxDepthSeen, &SearchError{Kind: ErrNotFound, Err: errMaxPages}
			}
		}

		visited[link] = true
		childPath, childDepth, err := r.dfsLimited(link, append(append([]string{}, path...), link), limit, visited, totalDiscovered)
		delete(visited, link)

		if childDepth > maxDepthSeen {
			maxDepthSeen = childDepth
		}
		if err != nil {
			return nil, maxDepthSeen, err
		}
		if childPath != nil {
			return childPath, maxDepthSeen, nil
		}
	}

	return nil, maxDepthSeen, nil
}
