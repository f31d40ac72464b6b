package store

import (
	"context"
	"fmt"
	"time"
)

// WriteRun inserts a run record into the store.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - duplicate IDs are silently
// ignored. Other constraint violations (e.g., NOT NULL) will still return errors.
//
// The run's Goal and Plan are serialized to canonical JSON per RFC 8785 so
// identical runs always produce identical stored bytes.
func (s *Store) WriteRun(ctx context.Context, run Run) error {
	goalJSON, err := marshalGoal(run.Goal)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	planJSON, err := marshalPlan(run.Plan)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, spec_hash, goal, status, cost, elapsed_ms, expanded, plan, plan_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.SpecHash,
		goalJSON,
		run.Status,
		run.Cost,
		run.ElapsedMS,
		run.Expanded,
		planJSON,
		run.PlanHash,
		run.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}

	return nil
}
