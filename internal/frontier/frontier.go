// Package frontier implements the search-state priority containers the
// engine's strategies pop from: FIFO for breadth-first search and a
// min-priority queue ordered by score for uniform-cost, A*, and informed
// bidirectional search. A LIFO policy is also provided; the engine's
// iterative-deepening DFS recurses directly and does not use a Frontier.
package frontier

import "container/heap"

// State is one node on a search frontier: node is the current page
// identifier, path the ordered sequence of nodes from the search origin to
// and including node, depth = len(path)-1, and score the frontier
// priority (lower is better; unused by FIFO/LIFO policies).
type State struct {
	Node  string
	Path  []string
	Depth int
	Score float64
}

// Frontier is a container of search states popped in an order determined
// by its policy. Push, Pop, and Empty are never called concurrently for a
// single search — the engine's control loop is the only mutator.
type Frontier interface {
	Push(s State)
	Pop() (State, bool)
	Empty() bool
	Len() int
}

// MaxQueueSize of zero means unbounded.
const Unbounded = 0

// NewFIFO returns a push-back/pop-front frontier, used by BFS.
func NewFIFO(maxQueueSize int) Frontier {
	return &dequeFrontier{maxSize: maxQueueSize, popFront: true}
}

// NewLIFO returns a push-back/pop-back frontier. The engine's
// iterative-deepening DFS does not use it (it recurses instead).
func NewLIFO(maxQueueSize int) Frontier {
	return &dequeFrontier{maxSize: maxQueueSize, popFront: false}
}

// dequeFrontier backs both FIFO and LIFO policies with a single slice.
// When bounded and full, a push evicts the highest-score (least
// promising) element before inserting — for FIFO/LIFO frontiers every
// element has score 0, so eviction falls back to the oldest entry.
type dequeFrontier struct {
	items    []State
	maxSize  int
	popFront bool
}

func (d *dequeFrontier) Push(s State) {
	if d.maxSize > Unbounded && len(d.items) >= d.maxSize {
		d.evictWorst()
	}
	d.items = append(d.items, s)
}

func (d *dequeFrontier) evictWorst() {
	worst := 0
	for i, it := range d.items {
		if it.Score > d.items[worst].Score {
			worst = i
		}
	}
	d.items = append(d.items[:worst], d.items[worst+1:]...)
}

func (d *dequeFrontier) Pop() (State, bool) {
	if len(d.items) == 0 {
		return State{}, false
	}
	var s State
	if d.popFront {
		s = d.items[0]
		d.items = d.items[1:]
	} else {
		last := len(d.items) - 1
		s = d.items[last]
		d.items = d.items[:last]
	}
	return s, true
}

func (d *dequeFrontier) Empty() bool { return len(d.items) == 0 }
func (d *dequeFrontier) Len() int    { return len(d.items) }

// NewPriority returns a min-priority frontier ordered by ascending score,
// ties broken by insertion order (stable), used by uniform-cost, A*, and
// informed bidirectional search.
func NewPriority(maxQueueSize int) Frontier {
	return &priorityFrontier{heap: &stateHeap{}, maxSize: maxQueueSize}
}

type priorityItem struct {
	state State
	seq   int
}

// stateHeap implements container/heap.Interface over priorityItems; it is
// wrapped by priorityFrontier rather than exposed directly, since
// heap.Interface's Push(any)/Pop() any signatures can't coexist on the same
// type as the Frontier interface's Push(State)/Pop() (State, bool).
type stateHeap []priorityItem

func (h stateHeap) Len() int { return len(h) }

func (h stateHeap) Less(i, j int) bool {
	if h[i].state.Score != h[j].state.Score {
		return h[i].state.Score < h[j].state.Score
	}
	return h[i].seq < h[j].seq
}

func (h stateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *stateHeap) Push(x interface{}) {
	*h = append(*h, x.(priorityItem))
}

func (h *stateHeap) Pop() interface{} {
	old := *h
	last := len(old) - 1
	it := old[last]
	*h = old[:last]
	return it
}

type priorityFrontier struct {
	heap    *stateHeap
	nextSeq int
	maxSize int
}

func (pq *priorityFrontier) Push(s State) {
	if pq.maxSize > Unbounded && pq.heap.Len() >= pq.maxSize {
		pq.evictWorst()
	}
	heap.Push(pq.heap, priorityItem{state: s, seq: pq.nextSeq})
	pq.nextSeq++
}

func (pq *priorityFrontier) evictWorst() {
	items := *pq.heap
	worst := 0
	for i, it := range items {
		if it.state.Score > items[worst].state.Score {
			worst = i
		}
	}
	last := len(items) - 1
	items[worst], items[last] = items[last], items[worst]
	*pq.heap = items[:last]
	heap.Init(pq.heap)
}

func (pq *priorityFrontier) Pop() (State, bool) {
	if pq.heap.Len() == 0 {
		return State{}, false
	}
	it := heap.Pop(pq.heap).(priorityItem)
	return it.state, true
}

func (pq *priorityFrontier) Empty() bool { return pq.heap.Len() == 0 }
func (pq *priorityFrontier) Len() int    { return pq.heap.Len() }
