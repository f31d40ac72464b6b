package compiler

import (
	"slices"

	"craftplan/internal/ir"
)

// Rule is a compiled crafting rule: the declarative RuleSpec lowered into
// index-based precondition and effect data. Compilation runs once, before
// search; Check and Apply run potentially millions of times per search, so
// all name lookups are front-loaded here.
type Rule struct {
	name string
	cost int64

	// requires holds catalog indices that must be present with qty >= 1.
	requires []int
	// consumes holds (index, qty) preconditions; the same pairs negated
	// feed the effect.
	consumes []ir.Adjustment
	// effect is the full adjustment list: consumption negated plus
	// production, applied in one pass.
	effect []ir.Adjustment
	// produced holds catalog indices this rule adds to the inventory.
	produced []int
}

// CompileRule lowers a rule spec against a catalog. Any reference to an
// undeclared item, a negative cost, or a non-positive quantity is a
// CompileError.
func CompileRule(catalog *ir.Catalog, spec ir.RuleSpec) (*Rule, error) {
	if spec.Name == "" {
		return nil, &CompileError{Field: "name", Message: "rule name is required"}
	}
	if spec.Cost < 0 {
		return nil, &CompileError{Rule: spec.Name, Field: "cost", Message: "cost must be non-negative"}
	}

	r := &Rule{name: spec.Name, cost: spec.Cost}

	for _, item := range spec.Requires {
		i, ok := catalog.Index(item)
		if !ok {
			return nil, &CompileError{Rule: spec.Name, Field: "requires", Message: "undeclared item " + item}
		}
		r.requires = append(r.requires, i)
	}

	for item, qty := range spec.Consumes {
		i, ok := catalog.Index(item)
		if !ok {
			return nil, &CompileError{Rule: spec.Name, Field: "consumes", Message: "undeclared item " + item}
		}
		if qty <= 0 {
			return nil, &CompileError{Rule: spec.Name, Field: "consumes", Message: "quantity for " + item + " must be positive"}
		}
		r.consumes = append(r.consumes, ir.Adjustment{Index: i, Delta: qty})
		r.effect = append(r.effect, ir.Adjustment{Index: i, Delta: -qty})
	}

	for item, qty := range spec.Produces {
		i, ok := catalog.Index(item)
		if !ok {
			return nil, &CompileError{Rule: spec.Name, Field: "produces", Message: "undeclared item " + item}
		}
		if qty <= 0 {
			return nil, &CompileError{Rule: spec.Name, Field: "produces", Message: "quantity for " + item + " must be positive"}
		}
		r.effect = append(r.effect, ir.Adjustment{Index: i, Delta: qty})
		r.produced = append(r.produced, i)
	}

	// Maps iterate in random order; fix the adjustment order so Apply is
	// byte-for-byte deterministic across runs.
	byIndex := func(a, b ir.Adjustment) int { return a.Index - b.Index }
	slices.SortFunc(r.consumes, byIndex)
	slices.SortFunc(r.effect, byIndex)
	slices.Sort(r.produced)

	return r, nil
}

// Name returns the rule's unique name.
func (r *Rule) Name() string { return r.name }

// Cost returns the rule's fixed application cost.
func (r *Rule) Cost() int64 { return r.cost }

// Check reports whether the rule is applicable to a state: every required
// item present with quantity >= 1 and every consumed item present with at
// least the consumed quantity. A rule with no requirements and no
// consumption is always applicable.
func (r *Rule) Check(s ir.State) bool {
	for _, i := range r.requires {
		if s.CountAt(i) < 1 {
			return false
		}
	}
	for _, c := range r.consumes {
		if s.CountAt(c.Index) < c.Delta {
			return false
		}
	}
	return true
}

// Apply returns the successor state: consumption subtracted, production
// added. The input state is never mutated. Applying a rule whose Check
// fails panics (see ir.State.Adjust); callers must Check first.
func (r *Rule) Apply(s ir.State) ir.State {
	return s.Adjust(r.effect)
}

// Produces reports whether the rule adds the item at the given catalog
// index to the inventory. Used by the tool-pruning heuristic.
func (r *Rule) Produces(index int) bool {
	_, found := slices.BinarySearch(r.produced, index)
	return found
}
