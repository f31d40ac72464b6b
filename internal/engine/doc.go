// Package engine implements the crafting planner's search core: the
// transition graph over compiled rules, the pluggable pruning heuristic,
// and a deadline-bounded best-first search with deterministic tie-breaking.
//
// The search is uniform-cost (Dijkstra) with the heuristic folded in as an
// additive priority term. The reference heuristic is a pruning filter, not
// an admissible lower bound, so no A* optimality claim is made beyond what
// uniform cost gives when the heuristic returns zero.
//
// Everything here is single-threaded and synchronous. One Search invocation
// owns its frontier and bookkeeping tables exclusively; the compiled rule
// catalog is read-only shared configuration, so concurrent Search calls over
// the same catalog are safe.
package engine
