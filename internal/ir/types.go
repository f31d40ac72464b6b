package ir

// RuleSpec is a declarative crafting rule before compilation.
//
// Requires lists items that must be present (quantity >= 1) independent of
// consumption. Consumes maps items to exact quantities subtracted by the
// effect. Produces maps items to quantities added. A rule with no requires
// and no consumes is unconditionally applicable.
type RuleSpec struct {
	Name     string           `json:"name"`
	Cost     int64            `json:"cost"`
	Requires []string         `json:"requires,omitempty"`
	Consumes map[string]int64 `json:"consumes,omitempty"`
	Produces map[string]int64 `json:"produces,omitempty"`
}

// GoalSpec maps item identifiers to minimum required quantities. A state
// satisfies the goal iff every listed item is held with at least the listed
// quantity. Items not mentioned are unconstrained; a zero entry means the
// item merely has to exist in the catalog.
type GoalSpec map[string]int64

// ToolClass declares an ordered tool tier ladder for the pruning heuristic.
// Tiers run low to high (e.g. wooden_pickaxe < stone_pickaxe <
// iron_pickaxe). Single-tier classes (bench, furnace) are valid.
type ToolClass struct {
	Class string   `json:"class"`
	Tiers []string `json:"tiers"`
}

// CraftSpec is a complete crafting problem definition: the declared item
// catalog, the initial inventory overlay, the goal condition, the rule
// catalog in declaration order, and optional tool classes for the
// heuristic.
type CraftSpec struct {
	Items   []string         `json:"items"`
	Initial map[string]int64 `json:"initial,omitempty"`
	Goal    GoalSpec         `json:"goal"`
	Recipes []RuleSpec       `json:"recipes"`
	Tools   []ToolClass      `json:"tools,omitempty"`
}
