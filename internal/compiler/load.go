package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	"craftplan/internal/ir"
)

// Loader error code constants.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeNotFound    = "E002" // spec file not found
	ErrCodeBuildFailed = "E003" // CUE build failed
	ErrCodeBadField    = "E004" // malformed spec field
)

// LoadError represents an error that occurred during spec file loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSpecFile reads a crafting spec from a CUE file and parses it into a
// CraftSpec. JSON files work too since JSON is a subset of CUE.
//
// The file layout:
//
//	items: ["wood", "plank", "stick"]
//	initial: {wood: 1}
//	goal: {stick: 4}
//	recipes: {
//		"craft plank": {
//			cost: 1
//			consumes: {wood: 1}
//			produces: {plank: 4}
//		}
//	}
//	tools: {pickaxe: ["wooden_pickaxe", "stone_pickaxe"]}
//
// Recipe declaration order in the file is preserved, which fixes the
// transition generator's iteration order.
func LoadSpecFile(path string) (*ir.CraftSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("spec file not found: %s", path)}
		}
		return nil, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err), Pos: v.Pos()}
	}

	return ParseSpec(v)
}

// ParseSpec parses a CUE value into a CraftSpec.
// Uses CUE SDK's Go API directly (not CLI subprocess).
func ParseSpec(v cue.Value) (*ir.CraftSpec, error) {
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: err.Error(), Pos: v.Pos()}
	}

	spec := &ir.CraftSpec{}

	// Parse items (required)
	itemsVal := v.LookupPath(cue.ParsePath("items"))
	if !itemsVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadField, Message: "items is required", Pos: v.Pos()}
	}
	items, err := parseStringList(itemsVal)
	if err != nil {
		return nil, badField("items", itemsVal, err)
	}
	spec.Items = items

	// Parse initial (optional)
	initialVal := v.LookupPath(cue.ParsePath("initial"))
	if initialVal.Exists() {
		spec.Initial, err = parseQuantityMap(initialVal)
		if err != nil {
			return nil, badField("initial", initialVal, err)
		}
	}

	// Parse goal (required)
	goalVal := v.LookupPath(cue.ParsePath("goal"))
	if !goalVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadField, Message: "goal is required", Pos: v.Pos()}
	}
	goal, err := parseQuantityMap(goalVal)
	if err != nil {
		return nil, badField("goal", goalVal, err)
	}
	spec.Goal = goal

	// Parse recipes (required) - struct labels are rule names, declaration
	// order preserved by Fields()
	recipesVal := v.LookupPath(cue.ParsePath("recipes"))
	if !recipesVal.Exists() {
		return nil, &LoadError{Code: ErrCodeBadField, Message: "recipes is required", Pos: v.Pos()}
	}
	spec.Recipes, err = parseRecipes(recipesVal)
	if err != nil {
		return nil, err
	}

	// Parse tools (optional)
	toolsVal := v.LookupPath(cue.ParsePath("tools"))
	if toolsVal.Exists() {
		spec.Tools, err = parseTools(toolsVal)
		if err != nil {
			return nil, err
		}
	}

	return spec, nil
}

func parseRecipes(v cue.Value) ([]ir.RuleSpec, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, badField("recipes", v, err)
	}

	var recipes []ir.RuleSpec
	for iter.Next() {
		rv := iter.Value()
		rule := ir.RuleSpec{Name: iter.Label()}

		costVal := rv.LookupPath(cue.ParsePath("cost"))
		if !costVal.Exists() {
			return nil, &LoadError{
				Code:    ErrCodeBadField,
				Message: fmt.Sprintf("recipe %q: cost is required", rule.Name),
				Pos:     rv.Pos(),
			}
		}
		cost, err := costVal.Int64()
		if err != nil {
			return nil, badField("recipes."+rule.Name+".cost", costVal, err)
		}
		rule.Cost = cost

		if reqVal := rv.LookupPath(cue.ParsePath("requires")); reqVal.Exists() {
			rule.Requires, err = parseStringList(reqVal)
			if err != nil {
				return nil, badField("recipes."+rule.Name+".requires", reqVal, err)
			}
		}
		if consVal := rv.LookupPath(cue.ParsePath("consumes")); consVal.Exists() {
			rule.Consumes, err = parseQuantityMap(consVal)
			if err != nil {
				return nil, badField("recipes."+rule.Name+".consumes", consVal, err)
			}
		}
		if prodVal := rv.LookupPath(cue.ParsePath("produces")); prodVal.Exists() {
			rule.Produces, err = parseQuantityMap(prodVal)
			if err != nil {
				return nil, badField("recipes."+rule.Name+".produces", prodVal, err)
			}
		}

		recipes = append(recipes, rule)
	}

	return recipes, nil
}

func parseTools(v cue.Value) ([]ir.ToolClass, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, badField("tools", v, err)
	}

	var classes []ir.ToolClass
	for iter.Next() {
		class := ir.ToolClass{Class: iter.Label()}
		tiers, err := parseStringList(iter.Value())
		if err != nil {
			return nil, badField("tools."+class.Class, iter.Value(), err)
		}
		class.Tiers = tiers
		classes = append(classes, class)
	}

	return classes, nil
}

func parseStringList(v cue.Value) ([]string, error) {
	iter, err := v.List()
	if err != nil {
		return nil, err
	}
	var out []string
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func parseQuantityMap(v cue.Value) (map[string]int64, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64)
	for iter.Next() {
		n, err := iter.Value().Int64()
		if err != nil {
			return nil, err
		}
		out[iter.Label()] = n
	}
	return out, nil
}

func badField(field string, v cue.Value, err error) *LoadError {
	return &LoadError{
		Code:    ErrCodeBadField,
		Message: fmt.Sprintf("%s: %v", field, err),
		Pos:     v.Pos(),
	}
}
