package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"craftplan/internal/compiler"
	"craftplan/internal/ir"
)

func compile(t *testing.T, spec ir.CraftSpec) *compiler.Compiled {
	t.Helper()
	c, err := compiler.CompileSpec(spec)
	require.NoError(t, err)
	return c
}

func woodworkSpec() ir.CraftSpec {
	return ir.CraftSpec{
		Items:   []string{"wood", "plank", "stick"},
		Initial: map[string]int64{"wood": 2},
		Goal:    ir.GoalSpec{"stick": 4},
		Recipes: []ir.RuleSpec{
			{Name: "punch for wood", Cost: 4, Produces: map[string]int64{"wood": 1}},
			{Name: "craft plank", Cost: 1, Consumes: map[string]int64{"wood": 1}, Produces: map[string]int64{"plank": 4}},
			{Name: "craft stick", Cost: 1, Consumes: map[string]int64{"plank": 2}, Produces: map[string]int64{"stick": 4}},
		},
	}
}

func collect(g *Graph, s ir.State) []Transition {
	var out []Transition
	for tr := range g.Successors(s) {
		out = append(out, tr)
	}
	return out
}

func TestGraph_SuccessorsDeclarationOrder(t *testing.T) {
	c := compile(t, woodworkSpec())
	g := NewGraph(c.Rules)

	got := collect(g, c.Initial)

	// "craft stick" needs planks, which the initial state lacks.
	require.Len(t, got, 2)
	assert.Equal(t, "punch for wood", got[0].Action)
	assert.Equal(t, "craft plank", got[1].Action)
	assert.Equal(t, int64(4), got[0].Cost)
	assert.Equal(t, int64(3), got[0].Next.Count("wood"))
	assert.Equal(t, int64(1), got[1].Next.Count("wood"))
	assert.Equal(t, int64(4), got[1].Next.Count("plank"))
}

func TestGraph_SuccessorsIdempotent(t *testing.T) {
	c := compile(t, woodworkSpec())
	g := NewGraph(c.Rules)

	first := collect(g, c.Initial)
	second := collect(g, c.Initial)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Action, second[i].Action)
		assert.Equal(t, first[i].Cost, second[i].Cost)
		assert.True(t, first[i].Next.Equal(second[i].Next))
	}
}

func TestGraph_SuccessorsDoNotMutateInput(t *testing.T) {
	c := compile(t, woodworkSpec())
	g := NewGraph(c.Rules)

	before := c.Initial.Key()
	for range g.Successors(c.Initial) {
	}
	assert.Equal(t, before, c.Initial.Key())
}

func TestGraph_SuccessorsEarlyStop(t *testing.T) {
	c := compile(t, woodworkSpec())
	g := NewGraph(c.Rules)

	count := 0
	for range g.Successors(c.Initial) {
		count++
		break
	}
	assert.Equal(t, 1, count)

	// The sequence restarts cleanly after an abandoned iteration.
	assert.Len(t, collect(g, c.Initial), 2)
}

func TestGraph_NoApplicableRules(t *testing.T) {
	spec := woodworkSpec()
	spec.Initial = nil
	spec.Recipes = spec.Recipes[1:] // drop the unconditional rule
	c := compile(t, spec)
	g := NewGraph(c.Rules)

	assert.Empty(t, collect(g, c.Initial))
}
