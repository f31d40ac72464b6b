package ir

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// State is an inventory snapshot: a fixed-length quantity vector over a
// catalog. Every declared item is always present (quantity may be 0) and
// quantities are never negative.
//
// States are value-immutable from the engine's perspective: Adjust returns
// a new State and never mutates the receiver. A State already recorded in
// the search bookkeeping tables must never change, because predecessor
// entries share structure with it.
type State struct {
	catalog *Catalog
	counts  []int64
}

// Adjustment is a single quantity delta against a catalog index.
// Compiled rules precompute these so the hot Apply path never does a name
// lookup.
type Adjustment struct {
	Index int
	Delta int64
}

// NewState builds the initial state: a zero-filled vector over the catalog
// with the initial inventory overlaid. Returns an error for undeclared
// items or negative quantities.
func (c *Catalog) NewState(initial map[string]int64) (State, error) {
	counts := make([]int64, c.Len())
	for name, qty := range initial {
		i, ok := c.Index(name)
		if !ok {
			return State{}, fmt.Errorf("initial inventory: undeclared item %q", name)
		}
		if qty < 0 {
			return State{}, fmt.Errorf("initial inventory: negative quantity %d for %q", qty, name)
		}
		counts[i] = qty
	}
	return State{catalog: c, counts: counts}, nil
}

// Catalog returns the catalog this state is laid out over.
func (s State) Catalog() *Catalog {
	return s.catalog
}

// Count returns the quantity of a named item. Unknown items count as 0.
func (s State) Count(name string) int64 {
	i, ok := s.catalog.Index(name)
	if !ok {
		return 0
	}
	return s.counts[i]
}

// CountAt returns the quantity at a catalog index.
func (s State) CountAt(i int) int64 {
	return s.counts[i]
}

// Adjust returns a new State with the given deltas applied. The receiver
// is left untouched.
//
// Panics if any resulting quantity would be negative: callers must check a
// rule's precondition before applying its effect, so a negative quantity is
// an internal invariant violation, not a recoverable condition. Silently
// clamping would corrupt cost accounting.
func (s State) Adjust(adjustments []Adjustment) State {
	counts := make([]int64, len(s.counts))
	copy(counts, s.counts)
	for _, a := range adjustments {
		counts[a.Index] += a.Delta
		if counts[a.Index] < 0 {
			panic(fmt.Sprintf("state adjustment drove %q negative (%d)",
				s.catalog.Item(a.Index), counts[a.Index]))
		}
	}
	return State{catalog: s.catalog, counts: counts}
}

// Key returns a canonical encoding of the quantity vector, usable as a map
// key for deduplication. Two states over the same catalog are equal iff
// their keys are equal.
func (s State) Key() string {
	var b strings.Builder
	b.Grow(len(s.counts) * 3)
	for i, n := range s.counts {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(n, 10))
	}
	return b.String()
}

// Equal reports whether two states hold identical quantity vectors.
// Both states must be laid out over the same catalog.
func (s State) Equal(other State) bool {
	return slices.Equal(s.counts, other.counts)
}

// Compare gives a deterministic total order over states: lexicographic on
// the quantity vector in catalog order. The order carries no domain
// meaning; it exists so equal-priority queue entries break ties the same
// way on every run.
func (s State) Compare(other State) int {
	return slices.Compare(s.counts, other.counts)
}

// ToMap returns the state as an item->quantity map including zero entries.
func (s State) ToMap() map[string]int64 {
	out := make(map[string]int64, len(s.counts))
	for i, n := range s.counts {
		out[s.catalog.Item(i)] = n
	}
	return out
}

// String renders the state with zero quantities elided, in catalog order.
func (s State) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i, n := range s.counts {
		if n == 0 {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(s.catalog.Item(i))
		b.WriteString(": ")
		b.WriteString(strconv.FormatInt(n, 10))
	}
	b.WriteByte('}')
	return b.String()
}
