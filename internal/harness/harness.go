package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"craftplan/internal/compiler"
	"craftplan/internal/engine"
	"craftplan/internal/testutil"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: the solve ran and every
	// expect clause matched.
	Pass bool `json:"pass"`

	// Status is the terminal search status (found, noplan, deadline).
	Status string `json:"status"`

	// Cost is the total plan cost. 0 unless Status is found.
	Cost int64 `json:"cost"`

	// Expanded counts states expanded during the search.
	Expanded int `json:"expanded"`

	// Plan contains the plan's action names in execution order.
	Plan []string `json:"plan"`

	// FinalState is the goal state on success, otherwise the last state
	// the search reached.
	FinalState map[string]int64 `json:"final_state"`

	// Errors contains expectation mismatch messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// AddError records an expectation mismatch and marks the result failed.
func (r *Result) AddError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
	r.Pass = false
}

// Run executes a scenario and returns the result.
//
// The solve runs against the real engine with a deterministic stepping
// clock (one millisecond per clock read), so deadline scenarios reproduce
// exactly and golden snapshots are stable across machines.
//
// Returns an error only when the scenario cannot be executed at all (spec
// fails to load or compile). Expectation mismatches are reported in the
// Result, not as errors.
func Run(scenario *Scenario) (*Result, error) {
	spec, err := compiler.LoadSpecFile(scenario.Spec)
	if err != nil {
		return nil, fmt.Errorf("load spec: %w", err)
	}

	if scenario.Initial != nil {
		spec.Initial = scenario.Initial
	}
	if scenario.Goal != nil {
		spec.Goal = scenario.Goal
	}

	compiled, err := compiler.CompileSpec(*spec)
	if err != nil {
		return nil, fmt.Errorf("compile spec: %w", err)
	}

	h := engine.ZeroHeuristic
	if len(compiled.Tools) > 0 {
		h = engine.NewToolHeuristic(compiled.Catalog, compiled.Tools, compiled.Rules)
	}

	deadlineMS := scenario.DeadlineMS
	if deadlineMS == 0 {
		deadlineMS = DefaultDeadlineMS
	}

	res := engine.Search(
		context.Background(),
		engine.NewGraph(compiled.Rules),
		compiled.Initial,
		compiled.Goal,
		h,
		time.Duration(deadlineMS)*time.Millisecond,
		engine.WithClock(testutil.NewAutoClock(time.Millisecond)),
		engine.WithMaxExpanded(scenario.MaxExpanded),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)

	result := &Result{
		Pass:       true,
		Status:     res.Status.String(),
		Cost:       res.Cost,
		Expanded:   res.Expanded,
		Plan:       res.Actions(),
		FinalState: res.BestState.ToMap(),
	}

	evaluateExpectation(result, scenario.Expect)

	return result, nil
}
