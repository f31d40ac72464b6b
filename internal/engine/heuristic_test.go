package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftplan/internal/ir"
)

func toolSpec() ir.CraftSpec {
	return ir.CraftSpec{
		Items: []string{"plank", "stick", "bench", "wooden_pickaxe", "stone_pickaxe", "iron_pickaxe"},
		Goal:  ir.GoalSpec{"bench": 1},
		Recipes: []ir.RuleSpec{
			{Name: "craft bench", Cost: 1, Consumes: map[string]int64{"plank": 4}, Produces: map[string]int64{"bench": 1}},
			{Name: "craft wooden_pickaxe", Cost: 1, Requires: []string{"bench"}, Consumes: map[string]int64{"plank": 3, "stick": 2}, Produces: map[string]int64{"wooden_pickaxe": 1}},
			{Name: "craft stone_pickaxe", Cost: 1, Requires: []string{"bench"}, Consumes: map[string]int64{"stick": 2}, Produces: map[string]int64{"stone_pickaxe": 1}},
		},
		Tools: []ir.ToolClass{
			{Class: "bench", Tiers: []string{"bench"}},
			{Class: "pickaxe", Tiers: []string{"wooden_pickaxe", "stone_pickaxe", "iron_pickaxe"}},
		},
	}
}

func toolHeuristic(t *testing.T) (Heuristic, *ir.Catalog) {
	t.Helper()
	c := compile(t, toolSpec())
	return NewToolHeuristic(c.Catalog, c.Tools, c.Rules), c.Catalog
}

func state(t *testing.T, c *ir.Catalog, counts map[string]int64) ir.State {
	t.Helper()
	s, err := c.NewState(counts)
	require.NoError(t, err)
	return s
}

func TestZeroHeuristic(t *testing.T) {
	est, prune := ZeroHeuristic("anything", ir.State{})
	assert.Zero(t, est)
	assert.False(t, prune)
}

func TestToolHeuristic_NoToolsInvolved(t *testing.T) {
	h, cat := toolHeuristic(t)

	est, prune := h("craft bench", state(t, cat, map[string]int64{"plank": 4, "bench": 1}))
	assert.Zero(t, est)
	assert.False(t, prune)
}

func TestToolHeuristic_PrunesDuplicateTool(t *testing.T) {
	h, cat := toolHeuristic(t)

	// Two benches in the resulting state, reached by an unrelated action.
	_, prune := h("craft stone_pickaxe", state(t, cat, map[string]int64{"bench": 2, "stone_pickaxe": 1}))
	assert.True(t, prune)
}

func TestToolHeuristic_AcquiringActionExempt(t *testing.T) {
	h, cat := toolHeuristic(t)

	// The duplicating action is the bench acquisition itself: not pruned,
	// but its successors will be, making the state a dead end.
	est, prune := h("craft bench", state(t, cat, map[string]int64{"bench": 2}))
	assert.Zero(t, est)
	assert.False(t, prune)
}

func TestToolHeuristic_PrunesTierRegression(t *testing.T) {
	h, cat := toolHeuristic(t)

	// Stone pickaxe already held; crafting the wooden tier is a regression.
	_, prune := h("craft wooden_pickaxe", state(t, cat, map[string]int64{
		"stone_pickaxe":  1,
		"wooden_pickaxe": 1,
		"bench":          1,
	}))
	assert.True(t, prune)
}

func TestToolHeuristic_UpgradeAllowed(t *testing.T) {
	h, cat := toolHeuristic(t)

	_, prune := h("craft stone_pickaxe", state(t, cat, map[string]int64{
		"wooden_pickaxe": 1,
		"stone_pickaxe":  1,
		"bench":          1,
	}))
	assert.False(t, prune, "acquiring a higher tier is never a regression")
}

func TestToolHeuristic_FirstToolAllowed(t *testing.T) {
	h, cat := toolHeuristic(t)

	est, prune := h("craft bench", state(t, cat, map[string]int64{"bench": 1}))
	assert.Zero(t, est)
	assert.False(t, prune)
}
