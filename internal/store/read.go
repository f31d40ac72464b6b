package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"craftplan/internal/query"
)

// ErrRunNotFound is returned by ReadRun when no run exists with the given ID.
var ErrRunNotFound = errors.New("run not found")

const runColumns = "id, spec_hash, goal, status, cost, elapsed_ms, expanded, plan, plan_hash, created_at"

// ReadRun returns the run with the given ID, or ErrRunNotFound.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+runColumns+`
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns runs matching the filter, newest first.
// A nil filter returns all runs. limit <= 0 means no limit.
//
// Ordering is deterministic: created_at DESC, then id DESC COLLATE BINARY
// to break ties between runs recorded in the same instant.
func (s *Store) ListRuns(ctx context.Context, filter query.Expr, limit int) ([]Run, error) {
	where, args, err := query.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	q := "SELECT " + runColumns + " FROM runs"
	if where != "" {
		q += " WHERE " + where
	}
	q += " ORDER BY created_at DESC, id COLLATE BINARY DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: iterate: %w", err)
	}

	// Return empty slice instead of nil
	if runs == nil {
		runs = []Run{}
	}

	return runs, nil
}

// scanner abstracts sql.Row and sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var goalJSON, planJSON, createdAt string

	err := row.Scan(
		&run.ID,
		&run.SpecHash,
		&goalJSON,
		&run.Status,
		&run.Cost,
		&run.ElapsedMS,
		&run.Expanded,
		&planJSON,
		&run.PlanHash,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.Goal, err = unmarshalGoal(goalJSON)
	if err != nil {
		return Run{}, err
	}

	run.Plan, err = unmarshalPlan(planJSON)
	if err != nil {
		return Run{}, err
	}

	run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}

	return run, nil
}
