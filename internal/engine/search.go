package engine

import (
	"container/heap"
	"context"
	"log/slog"
	"time"

	"craftplan/internal/compiler"
	"craftplan/internal/ir"
)

// Status is the terminal state of a search run.
type Status int

const (
	// StatusFound means a goal-satisfying path was returned.
	StatusFound Status = iota + 1
	// StatusNoPlan means the frontier was exhausted (or the expansion cap
	// hit) before any state satisfied the goal.
	StatusNoPlan
	// StatusDeadline means the wall-clock budget elapsed first.
	StatusDeadline
)

// String returns the status name for logs and CLI output.
func (s Status) String() string {
	switch s {
	case StatusFound:
		return "found"
	case StatusNoPlan:
		return "noplan"
	case StatusDeadline:
		return "deadline"
	default:
		return "unknown"
	}
}

// Step is one element of a returned path: the action taken and the state
// it produced. The initial state is not a step; a path of length one means
// a single rule application reached the goal.
type Step struct {
	Action string
	State  ir.State
}

// Result is the outcome of a search run. "No plan within budget" is an
// expected branch of behavior, so failures are reported here as data and
// never as an error.
type Result struct {
	Status   Status
	Path     []Step // nil unless Status == StatusFound
	Cost     int64  // total path cost; 0 on failure
	Expanded int    // states popped and expanded
	Elapsed  time.Duration
	// BestState is the cheapest state still under exploration when the
	// search stopped: the goal state on success, otherwise the last state
	// expanded. Reported for diagnostics.
	BestState ir.State
}

// Actions returns the path's action names in order.
func (r Result) Actions() []string {
	out := make([]string, len(r.Path))
	for i, s := range r.Path {
		out[i] = s.Action
	}
	return out
}

// node is the per-state search bookkeeping: best known cost-so-far, the
// predecessor that achieved it, and the action on that edge.
//
// INVARIANT: the three fields update atomically together. A state never has
// a recorded cost without a matching predecessor and action; the initial
// state uses the empty string as the "none" sentinel for both.
type node struct {
	cost    int64
	prevKey string
	action  string
	state   ir.State
}

// Option configures a search run.
type Option func(*searcher)

// WithClock injects the wall clock used for the deadline. Defaults to
// SystemClock.
func WithClock(c Clock) Option {
	return func(s *searcher) {
		s.clock = c
	}
}

// WithMaxExpanded caps the number of expanded states. The default of 0
// means unlimited: memory growth is then bounded only by the deadline and
// the catalog's branching factor. Exceeding the cap reports StatusNoPlan.
func WithMaxExpanded(n int) Option {
	return func(s *searcher) {
		s.maxExpanded = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *searcher) {
		s.log = l
	}
}

type searcher struct {
	clock       Clock
	maxExpanded int
	log         *slog.Logger
}

// Search runs a deadline-bounded best-first search from initial to any
// state satisfying goal.
//
// Priority is cost-so-far plus the heuristic estimate; transitions the
// heuristic prunes are never enqueued. Equal priorities break ties on the
// state's total order, so two runs over the same inputs expand states in
// the same order and return the same path.
//
// The deadline is a polling check at the top of each iteration against the
// injected clock; there are no timers and no goroutines. Context
// cancellation is folded into the same check and reported as
// StatusDeadline. Callers wanting earlier cancellation should lower the
// budget.
func Search(
	ctx context.Context,
	graph *Graph,
	initial ir.State,
	goal *compiler.Goal,
	h Heuristic,
	budget time.Duration,
	opts ...Option,
) Result {
	s := &searcher{clock: SystemClock{}, log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if h == nil {
		h = ZeroHeuristic
	}

	start := s.clock.Now()
	elapsed := func() time.Duration { return s.clock.Now().Sub(start) }

	nodes := map[string]node{
		initial.Key(): {cost: 0, prevKey: "", action: "", state: initial},
	}

	open := &frontier{{priority: 0, pushedCost: 0, state: initial}}
	heap.Init(open)

	s.log.Debug("search starting",
		"rules", graph.Len(),
		"budget", budget,
		"initial", initial.String(),
	)

	expanded := 0
	best := initial

	for {
		if elapsed() >= budget || ctx.Err() != nil {
			s.log.Info("search deadline exceeded",
				"elapsed", elapsed(),
				"expanded", expanded,
				"best_state", best.String(),
			)
			return Result{Status: StatusDeadline, Expanded: expanded, Elapsed: elapsed(), BestState: best}
		}

		if open.Len() == 0 {
			s.log.Info("search exhausted frontier",
				"elapsed", elapsed(),
				"expanded", expanded,
				"best_state", best.String(),
			)
			return Result{Status: StatusNoPlan, Expanded: expanded, Elapsed: elapsed(), BestState: best}
		}

		entry := heap.Pop(open).(frontierEntry)
		key := entry.state.Key()

		// Lazy deletion: a better path to this state was recorded after
		// this entry was pushed. Processing it anyway would overwrite the
		// better predecessor, so skip it.
		if entry.pushedCost > nodes[key].cost {
			continue
		}

		cur := nodes[key]
		best = cur.state

		if goal.Check(cur.state) {
			path := reconstructPath(nodes, key)
			s.log.Info("plan found",
				"cost", cur.cost,
				"steps", len(path),
				"expanded", expanded,
				"elapsed", elapsed(),
			)
			return Result{
				Status:    StatusFound,
				Path:      path,
				Cost:      cur.cost,
				Expanded:  expanded,
				Elapsed:   elapsed(),
				BestState: cur.state,
			}
		}

		expanded++
		if s.maxExpanded > 0 && expanded > s.maxExpanded {
			s.log.Warn("expansion cap reached",
				"max_expanded", s.maxExpanded,
				"elapsed", elapsed(),
			)
			return Result{Status: StatusNoPlan, Expanded: expanded, Elapsed: elapsed(), BestState: best}
		}

		for tr := range graph.Successors(cur.state) {
			estimate, prune := h(tr.Action, tr.Next)
			if prune {
				continue
			}

			candidate := cur.cost + tr.Cost
			nextKey := tr.Next.Key()
			if known, seen := nodes[nextKey]; seen && candidate >= known.cost {
				continue
			}

			// Cost, predecessor and action update together; see node.
			nodes[nextKey] = node{
				cost:    candidate,
				prevKey: key,
				action:  tr.Action,
				state:   tr.Next,
			}
			heap.Push(open, frontierEntry{
				priority:   candidate + estimate,
				pushedCost: candidate,
				state:      tr.Next,
			})
		}
	}
}
