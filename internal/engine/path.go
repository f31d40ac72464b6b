package engine

import "slices"

// reconstructPath walks predecessor links from the goal state back to the
// initial state (prevKey == "") and reverses the collected steps into
// oldest-first order.
//
// Termination: each node's predecessor has strictly lower cost-so-far, so
// the chain is a simple path with no cycles.
func reconstructPath(nodes map[string]node, goalKey string) []Step {
	var steps []Step
	for key := goalKey; ; {
		n := nodes[key]
		if n.prevKey == "" && n.action == "" {
			break
		}
		steps = append(steps, Step{Action: n.action, State: n.state})
		key = n.prevKey
	}
	slices.Reverse(steps)
	return steps
}
