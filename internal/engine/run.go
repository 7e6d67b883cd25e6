package engine

import (
	"context"
	"errors"
	"sync"
)

var errMaxPages = errors.New("max_pages reached before a path was found")

// run holds the per-search state shared by every strategy: the context
// carrying the search's single deadline, the canonicalized endpoints, a
// log sink, and the A*/bidirectional heuristic memo. It is owned by one
// goroutine (the control loop; bidirectional search steps both directions
// from that same loop). heuristicMu guards the memo all the same, so
// heuristic stays safe if it is ever called from another goroutine.
type run struct {
	engine    *Engine
	ctx       context.Context
	startURL  string
	finishURL string
	log       func(format string, args ...interface{})

	heuristicMu   sync.Mutex
	heuristicMemo map[string]float64
}
