package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAndRun(t *testing.T, path string) *Result {
	t.Helper()
	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	result, err := Run(scenario)
	require.NoError(t, err)
	return result
}

func TestRunPlankPlan(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/plank-plan.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "found", result.Status)
	assert.Equal(t, int64(1), result.Cost)
	assert.Equal(t, []string{"craft plank"}, result.Plan)
	assert.Equal(t, int64(4), result.FinalState["plank"])
}

func TestRunStickPlan(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/stick-plan.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"craft plank", "craft stick"}, result.Plan)
	assert.Equal(t, int64(2), result.Cost)
}

func TestRunNoPlan(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/unreachable-noplan.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "noplan", result.Status)
	assert.Empty(t, result.Plan)
}

func TestRunDeadline(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/deadline-immediate.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, "deadline", result.Status)
	assert.Zero(t, result.Expanded)
}

func TestRunToolHeuristic(t *testing.T) {
	result := loadAndRun(t, "testdata/scenarios/bench-stick.yaml")

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, int64(4), result.Cost)
	// The plan builds exactly one bench.
	benches := 0
	for _, action := range result.Plan {
		if action == "craft bench" {
			benches++
		}
	}
	assert.Equal(t, 1, benches)
}

func TestRunDeterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/stick-plan.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	for range 4 {
		again, err := Run(scenario)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRunMismatchReported(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/stick-plan.yaml")
	require.NoError(t, err)

	wrong := int64(99)
	scenario.Expect.Cost = &wrong
	scenario.Expect.Status = "noplan"

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	// One error per failed clause.
	assert.Len(t, result.Errors, 2)
}

func TestRunBadSpec(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/stick-plan.yaml")
	require.NoError(t, err)

	// Goal override naming an undeclared item fails compilation.
	scenario.Goal = map[string]int64{"diamond": 1}

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile spec")
}
