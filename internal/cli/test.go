package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"craftplan/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario name filter (glob pattern)
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Status string   `json:"status,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenario-file-or-dir>",
		Short: "Run conformance scenarios",
		Long: `Run YAML conformance scenarios against the real search engine.

Each scenario names a crafting spec, a search budget and an expected
outcome. Scenarios run with a deterministic clock, so results reproduce
exactly across machines.

Exit codes:
  0 - all scenarios passed
  1 - one or more scenarios failed
  2 - command error (invalid paths, malformed scenario)

Examples:
  craftplan test ./scenarios
  craftplan test ./scenarios --filter "bench-*"
  craftplan test ./scenarios/stick-plan.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by name glob")

	return cmd
}

func runTests(opts *TestOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	files, err := harness.FindScenarios(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "find scenarios", err)
	}

	result := TestResult{Scenarios: make([]ScenarioResult, 0, len(files))}
	for _, file := range files {
		scenResult, err := runScenario(formatter, file, opts.Filter)
		if err != nil {
			return err
		}
		if scenResult == nil {
			continue // filtered out
		}

		result.Scenarios = append(result.Scenarios, *scenResult)
		result.Total++
		if scenResult.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else {
		printTestText(formatter, result)
	}

	if result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", result.Failed, result.Total))
	}
	return nil
}

func runScenario(formatter *OutputFormatter, file, filter string) (*ScenarioResult, error) {
	scenario, err := harness.LoadScenario(file)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", file), err)
	}

	if filter != "" {
		match, err := filepath.Match(filter, scenario.Name)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "bad --filter pattern", err)
		}
		if !match {
			return nil, nil
		}
	}

	formatter.VerboseLog("Running scenario %s (%s)", scenario.Name, file)

	res, err := harness.Run(scenario)
	if err != nil {
		// A scenario that cannot execute still counts as a failure, with
		// the cause in its error list.
		return &ScenarioResult{
			Name:   scenario.Name,
			Pass:   false,
			Errors: []string{err.Error()},
		}, nil
	}

	return &ScenarioResult{
		Name:   scenario.Name,
		Pass:   res.Pass,
		Status: res.Status,
		Errors: res.Errors,
	}, nil
}

func printTestText(formatter *OutputFormatter, result TestResult) {
	w := formatter.Writer
	for _, s := range result.Scenarios {
		mark := "PASS"
		if !s.Pass {
			mark = "FAIL"
		}
		fmt.Fprintf(w, "%s  %s\n", mark, s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "      %s\n", e)
		}
	}
	fmt.Fprintf(w, "%d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
}
