package compiler

import (
	"slices"

	"craftplan/internal/ir"
)

// Goal is the compiled goal condition: a predicate over states lowered to
// index-based minimum-quantity checks.
type Goal struct {
	minimums []ir.Adjustment // Delta is the minimum required quantity
}

// CompileGoal lowers a goal condition against a catalog. Unknown items and
// negative minimums are compile errors. A zero minimum is legal and means
// the item merely has to be declared, which every state satisfies.
func CompileGoal(catalog *ir.Catalog, goal ir.GoalSpec) (*Goal, error) {
	g := &Goal{}
	for item, min := range goal {
		i, ok := catalog.Index(item)
		if !ok {
			return nil, &CompileError{Field: "goal", Message: "undeclared item " + item}
		}
		if min < 0 {
			return nil, &CompileError{Field: "goal", Message: "minimum for " + item + " must be non-negative"}
		}
		g.minimums = append(g.minimums, ir.Adjustment{Index: i, Delta: min})
	}
	slices.SortFunc(g.minimums, func(a, b ir.Adjustment) int { return a.Index - b.Index })
	return g, nil
}

// Check reports whether the state satisfies every minimum-quantity
// requirement. An empty goal is satisfied by every state.
func (g *Goal) Check(s ir.State) bool {
	for _, m := range g.minimums {
		if s.CountAt(m.Index) < m.Delta {
			return false
		}
	}
	return true
}
