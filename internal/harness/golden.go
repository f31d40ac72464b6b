package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"craftplan/internal/ir"
)

// snapshot converts a scenario result to a canonical JSON value. The solve
// is fully deterministic, so every field - including the expansion count -
// can be snapshotted byte-exactly.
func snapshot(scenarioName string, result *Result) ir.Obj {
	plan := make(ir.Arr, len(result.Plan))
	for i, action := range result.Plan {
		plan[i] = ir.Str(action)
	}

	return ir.Obj{
		"scenario_name": ir.Str(scenarioName),
		"status":        ir.Str(result.Status),
		"cost":          ir.Int(result.Cost),
		"expanded":      ir.Int(result.Expanded),
		"plan":          plan,
		"final_state":   ir.QuantityObj(result.FinalState),
	}
}

// RunWithGolden executes a scenario and compares the outcome against a
// golden file at testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; an outcome that differs
// from the golden file fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an already-computed result against the golden file
// for scenarioName.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := ir.MarshalCanonical(snapshot(scenarioName, result))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
