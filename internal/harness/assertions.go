package harness

import "slices"

// evaluateExpectation checks a solve result against the scenario's expect
// clause, recording one error per mismatch so a failing scenario reports
// everything wrong at once.
func evaluateExpectation(result *Result, expect Expectation) {
	if result.Status != expect.Status {
		result.AddError("status: expected %s, got %s", expect.Status, result.Status)
	}

	if expect.Cost != nil && result.Cost != *expect.Cost {
		result.AddError("cost: expected %d, got %d", *expect.Cost, result.Cost)
	}

	if expect.Actions != nil && !slices.Equal(result.Plan, expect.Actions) {
		result.AddError("actions: expected %v, got %v", expect.Actions, result.Plan)
	}

	// Subset match: only the listed items are checked.
	for item, want := range expect.FinalState {
		got, ok := result.FinalState[item]
		if !ok {
			result.AddError("final_state: item %q not in catalog", item)
			continue
		}
		if got != want {
			result.AddError("final_state: %s: expected %d, got %d", item, want, got)
		}
	}
}
