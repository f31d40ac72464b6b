package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records a single solve invocation: which spec was solved, the
// requested goal, the outcome, and the search diagnostics.
type Run struct {
	ID        string           // UUIDv7, time-ordered
	SpecHash  string           // content-addressed spec identity
	Goal      map[string]int64 // item -> minimum quantity
	Status    string           // found | noplan | deadline
	Cost      int64
	ElapsedMS int64
	Expanded  int64
	Plan      []string // action names in execution order, empty unless found
	PlanHash  string
	CreatedAt time.Time
}

// NewRunID generates a time-ordered run identifier.
// UUIDv7 embeds a millisecond timestamp so lexicographic ID order roughly
// matches creation order, which keeps history listings stable.
func NewRunID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}
