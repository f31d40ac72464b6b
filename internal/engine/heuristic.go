package engine

import (
	"craftplan/internal/compiler"
	"craftplan/internal/ir"
)

// Heuristic estimates the remaining cost for a transition, identified by
// the action taken and the state it results in. Returning prune=true
// excludes the transition outright: the search must never enqueue it, which
// is strictly stronger than deprioritizing. Estimates must be non-negative.
type Heuristic func(action string, next ir.State) (estimate int64, prune bool)

// ZeroHeuristic never prunes and never biases priority, reducing the search
// to plain uniform-cost (Dijkstra) order.
func ZeroHeuristic(string, ir.State) (int64, bool) {
	return 0, false
}

// NewToolHeuristic builds the reference domain heuristic from declared tool
// classes. It is a pruning filter layered on top of uniform path cost, not
// a distance estimate:
//
//   - Holding more than one unit of any tool prunes the transition, unless
//     the action itself is the acquisition of that tool. The duplicated
//     state then becomes a dead end one expansion later, since none of its
//     outgoing transitions get this exemption.
//   - Producing a tool tier strictly below one already held in the same
//     class prunes the transition (no regressing from iron to wood).
//   - Everything else estimates 0.
//
// Which actions count as "the acquisition of" a tool is derived from the
// compiled rules' production sets.
func NewToolHeuristic(catalog *ir.Catalog, classes []ir.ToolClass, rules []*compiler.Rule) Heuristic {
	// Resolve tool tiers to catalog indices once, up front.
	type class struct {
		tiers []int // low to high
	}

	var toolIdx []int
	resolved := make([]class, 0, len(classes))
	for _, tc := range classes {
		c := class{tiers: make([]int, 0, len(tc.Tiers))}
		for _, tier := range tc.Tiers {
			if i, ok := catalog.Index(tier); ok {
				c.tiers = append(c.tiers, i)
				toolIdx = append(toolIdx, i)
			}
		}
		resolved = append(resolved, c)
	}

	// producedTools[action] lists the tool indices that action adds.
	producedTools := make(map[string][]int, len(rules))
	for _, r := range rules {
		for _, i := range toolIdx {
			if r.Produces(i) {
				producedTools[r.Name()] = append(producedTools[r.Name()], i)
			}
		}
	}

	producesTool := func(action string, tool int) bool {
		for _, i := range producedTools[action] {
			if i == tool {
				return true
			}
		}
		return false
	}

	return func(action string, next ir.State) (int64, bool) {
		// Redundant tool duplication.
		for _, i := range toolIdx {
			if next.CountAt(i) > 1 {
				if producesTool(action, i) {
					// The acquiring action itself is exempt; the tool
					// channel contributes nothing to priority.
					return 0, false
				}
				return 0, true
			}
		}

		// Tier regression: producing a tier strictly below one already
		// held in the same class.
		for _, c := range resolved {
			for lo := 0; lo < len(c.tiers)-1; lo++ {
				if !producesTool(action, c.tiers[lo]) {
					continue
				}
				for hi := lo + 1; hi < len(c.tiers); hi++ {
					if next.CountAt(c.tiers[hi]) >= 1 {
						return 0, true
					}
				}
			}
		}

		return 0, false
	}
}
