// Package compiler lowers declarative crafting specs into the compiled
// forms the search engine consumes: per-rule precondition and effect data,
// a goal predicate, and the initial state. Compilation fails fast on any
// malformed reference so the search hot path never misses an item lookup.
package compiler

import (
	"fmt"

	"craftplan/internal/ir"
)

// Compiled is a fully lowered crafting problem, ready to hand to the
// search engine.
type Compiled struct {
	Catalog *ir.Catalog
	Rules   []*Rule // declaration order, which the graph must preserve
	Goal    *Goal
	Initial ir.State
	Tools   []ir.ToolClass
}

// CompileSpec lowers a complete crafting spec. It builds the catalog,
// compiles every rule in declaration order, compiles the goal, constructs
// the initial state, and resolves tool classes. The first error aborts
// compilation.
func CompileSpec(spec ir.CraftSpec) (*Compiled, error) {
	catalog, err := ir.NewCatalog(spec.Items)
	if err != nil {
		return nil, fmt.Errorf("compile catalog: %w", err)
	}

	c := &Compiled{Catalog: catalog}

	seen := make(map[string]bool, len(spec.Recipes))
	for _, rs := range spec.Recipes {
		if seen[rs.Name] {
			return nil, &CompileError{Rule: rs.Name, Field: "name", Message: "duplicate rule name"}
		}
		seen[rs.Name] = true

		rule, err := CompileRule(catalog, rs)
		if err != nil {
			return nil, err
		}
		c.Rules = append(c.Rules, rule)
	}

	c.Goal, err = CompileGoal(catalog, spec.Goal)
	if err != nil {
		return nil, err
	}

	c.Initial, err = catalog.NewState(spec.Initial)
	if err != nil {
		return nil, &CompileError{Field: "initial", Message: err.Error()}
	}

	for _, tc := range spec.Tools {
		if len(tc.Tiers) == 0 {
			return nil, &CompileError{Field: "tools", Message: "tool class " + tc.Class + " has no tiers"}
		}
		for _, tier := range tc.Tiers {
			if _, ok := catalog.Index(tier); !ok {
				return nil, &CompileError{Field: "tools", Message: "tool class " + tc.Class + ": undeclared item " + tier}
			}
		}
	}
	c.Tools = spec.Tools

	return c, nil
}

// RuleByName returns the compiled rule with the given name, or nil.
func (c *Compiled) RuleByName(name string) *Rule {
	for _, r := range c.Rules {
		if r.Name() == name {
			return r
		}
	}
	return nil
}
