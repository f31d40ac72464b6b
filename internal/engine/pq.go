package engine

import "craftplan/internal/ir"

// frontierEntry is one scheduled expansion. Entries are never removed when
// a better path to the same state is found; instead the stale entry is
// detected at pop time by comparing pushedCost against the bookkeeping
// table (lazy deletion).
type frontierEntry struct {
	priority   int64 // pushedCost + heuristic estimate
	pushedCost int64 // cost-so-far recorded when this entry was pushed
	state      ir.State
}

// frontier is a min-heap over frontierEntry implementing container/heap.
// Ties on priority break on the state's total order, which makes pop order
// fully deterministic for a given rule catalog and initial state.
type frontier []frontierEntry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].priority != f[j].priority {
		return f[i].priority < f[j].priority
	}
	return f[i].state.Compare(f[j].state) < 0
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
}

func (f *frontier) Push(x any) {
	*f = append(*f, x.(frontierEntry))
}

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	entry := old[n-1]
	old[n-1] = frontierEntry{} // release the state for GC
	*f = old[:n-1]
	return entry
}
