package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"craftplan/internal/query"
	"craftplan/internal/store"
)

// HistoryOptions holds flags for the history list command.
type HistoryOptions struct {
	*RootOptions
	Status   string
	SpecHash string
	Limit    int
}

// NewHistoryCommand creates the history command group.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Query recorded solve runs",
	}

	cmd.AddCommand(newHistoryListCommand(rootOpts))
	cmd.AddCommand(newHistoryShowCommand(rootOpts))

	return cmd
}

func newHistoryListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list <db>",
		Short: "List recorded runs, newest first",
		Long: `List solve runs recorded with 'solve --history'.

Filters combine conjunctively and compile to parameterized SQL; there is
no raw query surface.

Examples:
  craftplan history list runs.db
  craftplan history list runs.db --status found --limit 10
  craftplan history list runs.db --spec-hash 4be1... --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryList(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "filter by status (found|noplan|deadline)")
	cmd.Flags().StringVar(&opts.SpecHash, "spec-hash", "", "filter by spec hash")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum runs to list (0 = unlimited)")

	return cmd
}

func runHistoryList(opts *HistoryOptions, dbPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openHistory(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	var clauses query.And
	if opts.Status != "" {
		clauses = append(clauses, query.Eq{Field: "status", Value: opts.Status})
	}
	if opts.SpecHash != "" {
		clauses = append(clauses, query.Eq{Field: "spec_hash", Value: opts.SpecHash})
	}
	var filter query.Expr
	if len(clauses) > 0 {
		filter = clauses
	}

	runs, err := st.ListRuns(cmd.Context(), filter, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "list runs", err)
	}

	if opts.Format == "json" {
		return formatter.JSON(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded.")
		return nil
	}
	for _, run := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %-8s  cost=%-6d  expanded=%-8d  %s\n",
			run.ID, run.Status, run.Cost, run.Expanded,
			run.CreatedAt.Format(time.RFC3339))
	}
	return nil
}

func newHistoryShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <db> <run-id>",
		Short:         "Show one recorded run in full",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryShow(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runHistoryShow(opts *RootOptions, dbPath, runID string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	st, err := openHistory(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.ReadRun(cmd.Context(), runID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			return NewExitError(ExitFailure, fmt.Sprintf("run %s not found", runID))
		}
		return WrapExitError(ExitCommandError, "read run", err)
	}

	if opts.Format == "json" {
		return formatter.JSON(run)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run %s\n", run.ID)
	fmt.Fprintf(w, "  created:   %s\n", run.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "  spec_hash: %s\n", run.SpecHash)
	fmt.Fprintf(w, "  goal:      %s\n", quantityList(run.Goal))
	fmt.Fprintf(w, "  status:    %s\n", run.Status)
	fmt.Fprintf(w, "  cost:      %d (expanded %d, %dms)\n", run.Cost, run.Expanded, run.ElapsedMS)
	if len(run.Plan) > 0 {
		fmt.Fprintf(w, "  plan:      %s\n", strings.Join(run.Plan, " -> "))
		fmt.Fprintf(w, "  plan_hash: %s\n", run.PlanHash)
	}
	return nil
}

// openHistory opens an existing history database. Unlike solve --history,
// the query commands refuse to create an empty database on a typo'd path.
func openHistory(dbPath string) (*store.Store, error) {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("history database not found: %s", dbPath))
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open history database", err)
	}
	return st, nil
}
