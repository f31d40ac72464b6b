package engine

import (
	"iter"
	"slices"

	"craftplan/internal/compiler"
	"craftplan/internal/ir"
)

// Transition is a single applicable rule edge out of a state: the rule's
// name, the successor state its effect produces, and its fixed cost.
type Transition struct {
	Action string
	Next   ir.State
	Cost   int64
}

// Graph lazily generates transitions from states using a fixed rule
// catalog.
//
// INVARIANT: the rule slice order never changes after construction. Rules
// are evaluated in declaration order, which makes transition generation a
// pure, deterministic function of the input state.
type Graph struct {
	rules []*compiler.Rule
}

// NewGraph builds a transition generator over compiled rules. The slice is
// copied to prevent external mutation from breaking the declaration-order
// invariant.
func NewGraph(rules []*compiler.Rule) *Graph {
	return &Graph{rules: slices.Clone(rules)}
}

// Successors yields every (action, next state, cost) triple for rules whose
// precondition holds in s, in declaration order. The sequence is finite
// (at most one transition per rule), restartable, and evaluates each rule
// lazily as the consumer advances.
func (g *Graph) Successors(s ir.State) iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for _, r := range g.rules {
			if !r.Check(s) {
				continue
			}
			if !yield(Transition{Action: r.Name(), Next: r.Apply(s), Cost: r.Cost()}) {
				return
			}
		}
	}
}

// Len returns the number of rules in the catalog.
func (g *Graph) Len() int {
	return len(g.rules)
}
