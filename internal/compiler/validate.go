package compiler

import (
	"fmt"

	"craftplan/internal/ir"
)

// ValidateSpec runs catalog-wide validation over a crafting spec and
// returns all findings (does not fail fast). It covers the per-rule checks
// CompileSpec performs plus cross-cutting ones a single rule compilation
// cannot see, such as goal items nothing can ever supply.
func ValidateSpec(spec ir.CraftSpec) []ValidationError {
	var errs []ValidationError

	if len(spec.Items) == 0 {
		errs = append(errs, ValidationError{
			Field:   "items",
			Message: "at least one item is required",
			Code:    ErrNoItems,
		})
	}

	declared := make(map[string]bool, len(spec.Items))
	for _, item := range spec.Items {
		if declared[item] {
			errs = append(errs, ValidationError{
				Field:   "items",
				Message: fmt.Sprintf("duplicate item %q", item),
				Code:    ErrDuplicateItem,
			})
		}
		declared[item] = true
	}

	if len(spec.Recipes) == 0 {
		errs = append(errs, ValidationError{
			Field:   "recipes",
			Message: "at least one recipe is required",
			Code:    ErrNoRecipes,
		})
	}

	producible := make(map[string]bool)
	seenRules := make(map[string]bool, len(spec.Recipes))
	for _, rs := range spec.Recipes {
		errs = append(errs, validateRule(rs, declared, seenRules)...)
		for item := range rs.Produces {
			producible[item] = true
		}
	}

	for item, min := range spec.Goal {
		field := fmt.Sprintf("goal.%s", item)
		if !declared[item] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "undeclared item",
				Code:    ErrUnknownItem,
			})
			continue
		}
		if min > spec.Initial[item] && !producible[item] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "no recipe produces this item and the initial inventory falls short; the goal can never be satisfied",
				Code:    ErrGoalUnreachable,
			})
		}
	}

	for _, tc := range spec.Tools {
		field := fmt.Sprintf("tools.%s", tc.Class)
		if len(tc.Tiers) == 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: "tool class has no tiers",
				Code:    ErrEmptyToolClass,
			})
		}
		for _, tier := range tc.Tiers {
			if !declared[tier] {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("undeclared item %q", tier),
					Code:    ErrUnknownToolItem,
				})
			}
		}
	}

	return errs
}

func validateRule(rs ir.RuleSpec, declared, seenRules map[string]bool) []ValidationError {
	var errs []ValidationError

	if rs.Name == "" {
		errs = append(errs, ValidationError{
			Field:   "recipes",
			Message: "rule name is required",
			Code:    ErrRuleNameEmpty,
		})
		return errs
	}

	field := fmt.Sprintf("recipes.%s", rs.Name)

	if seenRules[rs.Name] {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: "duplicate rule name",
			Code:    ErrDuplicateRule,
		})
	}
	seenRules[rs.Name] = true

	if rs.Cost < 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".cost",
			Message: "cost must be non-negative",
			Code:    ErrNegativeCost,
		})
	}

	for _, item := range rs.Requires {
		if !declared[item] {
			errs = append(errs, ValidationError{
				Field:   field + ".requires",
				Message: fmt.Sprintf("undeclared item %q", item),
				Code:    ErrUnknownItem,
			})
		}
	}
	for item, qty := range rs.Consumes {
		if !declared[item] {
			errs = append(errs, ValidationError{
				Field:   field + ".consumes",
				Message: fmt.Sprintf("undeclared item %q", item),
				Code:    ErrUnknownItem,
			})
		}
		if qty <= 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".consumes",
				Message: fmt.Sprintf("quantity for %q must be positive", item),
				Code:    ErrBadQuantity,
			})
		}
	}
	for item, qty := range rs.Produces {
		if !declared[item] {
			errs = append(errs, ValidationError{
				Field:   field + ".produces",
				Message: fmt.Sprintf("undeclared item %q", item),
				Code:    ErrUnknownItem,
			})
		}
		if qty <= 0 {
			errs = append(errs, ValidationError{
				Field:   field + ".produces",
				Message: fmt.Sprintf("quantity for %q must be positive", item),
				Code:    ErrBadQuantity,
			})
		}
	}

	return errs
}
