package market

import (
	"fmt"

	"github.com/meenmo/rateslib/indices"
)

// IndexStore owns the snapshot's indices by position. The position is the
// curve id carried by cashflows and market requests.
type IndexStore struct {
	items []indices.InterestRateIndex
	names map[string]int
}

// NewIndexStore builds an empty index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{names: make(map[string]int)}
}

// Add registers an index and returns its id.
func (s *IndexStore) Add(idx indices.InterestRateIndex) int {
	id := len(s.items)
	s.items = append(s.items, idx)
	s.names[idx.Name()] = id
	return id
}

// Index returns the index with the given id.
func (s *IndexStore) Index(id int) (indices.InterestRateIndex, error) {
	if id < 0 || id >= len(s.items) {
		return nil, indices.NotFoundError{What: fmt.Sprintf("index id %d", id)}
	}
	return s.items[id], nil
}

// IndexByName returns the index registered under name.
func (s *IndexStore) IndexByName(name string) (indices.InterestRateIndex, error) {
	id, ok := s.names[name]
	if !ok {
		return nil, indices.NotFoundError{What: fmt.Sprintf("index %q", name)}
	}
	return s.items[id], nil
}

// IDByName returns the id registered under name.
func (s *IndexStore) IDByName(name string) (int, error) {
	id, ok := s.names[name]
	if !ok {
		return 0, indices.NotFoundError{What: fmt.Sprintf("index %q", name)}
	}
	return id, nil
}

// Len returns the number of registered indices.
func (s *IndexStore) Len() int {
	return len(s.items)
}

// Clone returns a store sharing the same index values. Indices are
// read-only during pricing, so structural sharing is safe.
func (s *IndexStore) Clone() *IndexStore {
	out := NewIndexStore()
	out.items = append(out.items, s.items...)
	for name, id := range s.names {
		out.names[name] = id
	}
	return out
}
