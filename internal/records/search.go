package records

import "sort"

// Engine offers the retrieval strategies over a Store. Every method holds
// the store's read lock and returns copies, so results are never observed
// half-way through a mutation.
type Engine struct {
	store *Store
}

func NewEngine(store *Store) *Engine {
	return &Engine{store: store}
}

func (e *Engine) Store() *Store {
	return e.store
}

// LookupByID finds a record through the index in O(1).
func (e *Engine) LookupByID(id int) (Transaction, error) {
	e.store.mu.RLock()
	defer e.store.mu.RUnlock()

	t, ok := e.store.index.Lookup(id)
	if !ok {
		return Transaction{}, ErrNotFound
	}
	return *t, nil
}

// LinearScanByID walks the store in order. O(n).
func (e *Engine) LinearScanByID(id int) (Transaction, error) {
	e.store.mu.RLock()
	defer e.store.mu.RUnlock()

	for _, t := range e.store.records {
		if t.ID == id {
			return *t, nil
		}
	}
	return Transaction{}, ErrNotFound
}

// LinearScanByAmountRange returns records with minAmount <= amount <=
// maxAmount in store order. An inverted range matches nothing.
func (e *Engine) LinearScanByAmountRange(minAmount, maxAmount float64) []Transaction {
	return e.filter(func(t *Transaction) bool {
		return minAmount <= t.Amount && t.Amount <= maxAmount
	})
}

func (e *Engine) LinearScanByType(txType string) []Transaction {
	return e.filter(func(t *Transaction) bool {
		return t.Type == txType
	})
}

func (e *Engine) filter(match func(*Transaction) bool) []Transaction {
	e.store.mu.RLock()
	defer e.store.mu.RUnlock()

	out := []Transaction{}
	for _, t := range e.store.records {
		if match(t) {
			out = append(out, *t)
		}
	}
	return out
}

// BinarySearchByAmount sorts a copy of the records by amount and binary
// searches it for target, then widens around the hit while amounts stay
// equal. Results are ordered pivot first, then leftwards, then rightwards.
// Amounts are compared exactly, so 0.1+0.2 will not match 0.3.
func (e *Engine) BinarySearchByAmount(target float64) []Transaction {
	e.store.mu.RLock()
	sorted := e.store.copyAll()
	e.store.mu.RUnlock()

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Amount < sorted[j].Amount
	})

	out := []Transaction{}
	lo, hi := 0, len(sorted)-1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		switch amount := sorted[mid].Amount; {
		case amount == target:
			out = append(out, sorted[mid])
			for i := mid - 1; i >= 0 && sorted[i].Amount == target; i-- {
				out = append(out, sorted[i])
			}
			for i := mid + 1; i < len(sorted) && sorted[i].Amount == target; i++ {
				out = append(out, sorted[i])
			}
			return out
		case amount < target:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return out
}
