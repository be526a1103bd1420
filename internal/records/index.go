package records

import (
	"slices"

	"golang.org/x/exp/maps"
)

// Index maps an identifier to the store-owned record. It holds the same
// pointers as the store, never copies, and is not safe for concurrent use
// on its own: the Store's lock guards it.
type Index struct {
	byID map[int]*Transaction
}

func NewIndex(records []*Transaction) *Index {
	idx := &Index{}
	idx.Rebuild(records)
	return idx
}

// Rebuild discards the current mapping and builds a new one from records.
// It runs in O(n) and is invoked after every insert or delete.
func (idx *Index) Rebuild(records []*Transaction) {
	byID := make(map[int]*Transaction, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	idx.byID = byID
}

func (idx *Index) Lookup(id int) (*Transaction, bool) {
	r, ok := idx.byID[id]
	return r, ok
}

func (idx *Index) Len() int {
	return len(idx.byID)
}

// IDs returns the indexed identifiers in ascending order.
func (idx *Index) IDs() []int {
	ids := maps.Keys(idx.byID)
	slices.Sort(ids)
	return ids
}
