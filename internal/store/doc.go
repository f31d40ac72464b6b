// Package store provides durable run history for the planner.
//
// Every solve invocation can be recorded as a run: which spec it solved
// (content-addressed), the outcome, the plan, and the search diagnostics.
// SQLite keeps the history queryable with plain SQL; filters are compiled
// through internal/query so callers never concatenate SQL by hand.
package store
