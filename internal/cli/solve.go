package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"craftplan/internal/compiler"
	"craftplan/internal/engine"
	"craftplan/internal/ir"
	"craftplan/internal/store"
)

// SolveOptions holds flags for the solve command.
type SolveOptions struct {
	*RootOptions
	Deadline    time.Duration
	MaxExpanded int
	HistoryDB   string   // record the run here when non-empty
	Goal        []string // "item=qty" overrides replacing the spec goal
}

// SolveResult is the payload of the solve command.
type SolveResult struct {
	Status    string           `json:"status"`
	Cost      int64            `json:"cost"`
	Plan      []string         `json:"plan"`
	PlanHash  string           `json:"plan_hash,omitempty"`
	SpecHash  string           `json:"spec_hash"`
	Expanded  int              `json:"expanded"`
	ElapsedMS int64            `json:"elapsed_ms"`
	BestState map[string]int64 `json:"best_state"`
	RunID     string           `json:"run_id,omitempty"`
}

// NewSolveCommand creates the solve command.
func NewSolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "solve <spec-file>",
		Short: "Plan a crafting action sequence",
		Long: `Compile a crafting spec and search for a minimum-cost action
sequence from the initial inventory to the goal, within the wall-clock
deadline.

Exit codes:
  0 - plan found
  1 - no plan within budget (frontier exhausted, deadline, expansion cap)
  2 - command error (file missing, spec does not compile)

Examples:
  craftplan solve crafting.cue
  craftplan solve crafting.cue --deadline 5s --max-expanded 100000
  craftplan solve crafting.cue --goal rail=16 --goal cart=1
  craftplan solve crafting.cue --history runs.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Deadline, "deadline", 30*time.Second, "wall-clock search budget")
	cmd.Flags().IntVar(&opts.MaxExpanded, "max-expanded", 0, "cap on expanded states (0 = unlimited)")
	cmd.Flags().StringVar(&opts.HistoryDB, "history", "", "sqlite database to record the run in")
	cmd.Flags().StringArrayVar(&opts.Goal, "goal", nil, "goal override item=qty (repeatable, replaces the spec goal)")

	return cmd
}

func runSolve(opts *SolveOptions, specPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	goalOverride, err := parseGoalOverrides(opts.Goal)
	if err != nil {
		return WrapExitError(ExitCommandError, "bad --goal", err)
	}

	spec, compiled, err := loadAndCompile(formatter, specPath)
	if err != nil {
		return err
	}

	if goalOverride != nil {
		spec.Goal = goalOverride
		compiled, err = compiler.CompileSpec(*spec)
		if err != nil {
			formatter.Error(compiler.ErrCodeBadField, err.Error(), nil)
			return WrapExitError(ExitCommandError, "compile goal override", err)
		}
	}

	h := engine.ZeroHeuristic
	if len(compiled.Tools) > 0 {
		h = engine.NewToolHeuristic(compiled.Catalog, compiled.Tools, compiled.Rules)
		formatter.VerboseLog("Tool heuristic active: %d class(es)", len(compiled.Tools))
	}

	res := engine.Search(
		cmd.Context(),
		engine.NewGraph(compiled.Rules),
		compiled.Initial,
		compiled.Goal,
		h,
		opts.Deadline,
		engine.WithMaxExpanded(opts.MaxExpanded),
	)

	result := SolveResult{
		Status:    res.Status.String(),
		Cost:      res.Cost,
		Plan:      res.Actions(),
		SpecHash:  specDigest(spec),
		Expanded:  res.Expanded,
		ElapsedMS: res.Elapsed.Milliseconds(),
		BestState: res.BestState.ToMap(),
	}
	if res.Status == engine.StatusFound {
		result.PlanHash, err = ir.PlanHash(result.Plan)
		if err != nil {
			return WrapExitError(ExitCommandError, "hash plan", err)
		}
	}

	if opts.HistoryDB != "" {
		result.RunID, err = recordRun(cmd, opts.HistoryDB, spec, result)
		if err != nil {
			return WrapExitError(ExitCommandError, "record run", err)
		}
		formatter.VerboseLog("Recorded run %s in %s", result.RunID, opts.HistoryDB)
	}

	if opts.Format == "json" {
		if err := formatter.JSON(result); err != nil {
			return err
		}
	} else {
		printSolveText(formatter, res, result)
	}

	if res.Status != engine.StatusFound {
		return NewExitError(ExitFailure, "no plan: "+result.Status)
	}
	return nil
}

func printSolveText(formatter *OutputFormatter, res engine.Result, result SolveResult) {
	w := formatter.Writer
	switch res.Status {
	case engine.StatusFound:
		fmt.Fprintf(w, "Plan found: %d step(s), cost %d (expanded %d, %dms)\n",
			len(result.Plan), result.Cost, result.Expanded, result.ElapsedMS)
		for i, step := range res.Path {
			if formatter.Verbose {
				fmt.Fprintf(w, "  %2d. %-30s -> %s\n", i+1, step.Action, step.State)
			} else {
				fmt.Fprintf(w, "  %2d. %s\n", i+1, step.Action)
			}
		}
	case engine.StatusDeadline:
		fmt.Fprintf(w, "Deadline exceeded after %dms (expanded %d). Best state: %s\n",
			result.ElapsedMS, result.Expanded, res.BestState)
	default:
		fmt.Fprintf(w, "No plan exists (expanded %d, %dms). Best state: %s\n",
			result.Expanded, result.ElapsedMS, res.BestState)
	}
}

// recordRun persists the solve outcome to the history database.
func recordRun(cmd *cobra.Command, dbPath string, spec *ir.CraftSpec, result SolveResult) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	id, err := store.NewRunID()
	if err != nil {
		return "", err
	}

	run := store.Run{
		ID:        id,
		SpecHash:  result.SpecHash,
		Goal:      spec.Goal,
		Status:    result.Status,
		Cost:      result.Cost,
		ElapsedMS: result.ElapsedMS,
		Expanded:  int64(result.Expanded),
		Plan:      result.Plan,
		PlanHash:  result.PlanHash,
		CreatedAt: time.Now().UTC(),
	}
	if err := st.WriteRun(cmd.Context(), run); err != nil {
		return "", err
	}
	return id, nil
}

// parseGoalOverrides parses repeated "item=qty" flags. Returns nil when no
// overrides were given.
func parseGoalOverrides(entries []string) (ir.GoalSpec, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	goal := make(ir.GoalSpec, len(entries))
	for _, entry := range entries {
		name, qtyStr, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected item=qty, got %q", entry)
		}
		qty, err := strconv.ParseInt(qtyStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("quantity in %q: %w", entry, err)
		}
		if qty < 0 {
			return nil, fmt.Errorf("quantity in %q must be non-negative", entry)
		}
		goal[name] = qty
	}
	return goal, nil
}
