package ir

import "fmt"

// Catalog is the ordered set of declared item identifiers.
//
// Declaration order is canonical: it fixes the layout of every State vector
// and therefore the state key encoding and comparison order. Two catalogs
// with the same items in a different order produce incompatible states.
//
// INVARIANT: item names are unique and non-empty; the catalog never changes
// after construction.
type Catalog struct {
	items []string
	index map[string]int
}

// NewCatalog builds a catalog from an ordered item list.
// Returns an error on empty list, empty name, or duplicate name.
func NewCatalog(items []string) (*Catalog, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("catalog requires at least one item")
	}

	index := make(map[string]int, len(items))
	for i, name := range items {
		if name == "" {
			return nil, fmt.Errorf("catalog item %d: empty name", i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate catalog item: %s", name)
		}
		index[name] = i
	}

	c := &Catalog{
		items: make([]string, len(items)),
		index: index,
	}
	copy(c.items, items)
	return c, nil
}

// Len returns the number of declared items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// Items returns the declared item names in declaration order.
// The returned slice is a copy.
func (c *Catalog) Items() []string {
	out := make([]string, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item name at the given index.
func (c *Catalog) Item(i int) string {
	return c.items[i]
}

// Index returns the position of an item in the catalog, or false if the
// item is not declared.
func (c *Catalog) Index(name string) (int, bool) {
	i, ok := c.index[name]
	return i, ok
}
