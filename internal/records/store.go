package records

import (
	"sync"
	"time"
)

// Store is the authoritative, insertion-ordered collection of transactions.
// A single RWMutex guards both the records and the Index: mutations hold the
// write lock through the index rebuild, reads share the read lock.
type Store struct {
	mu      sync.RWMutex
	records []*Transaction
	index   *Index
	now     func() time.Time
}

type Option func(*Store)

// WithClock overrides the clock used for default timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore takes ownership of copies of initial, preserving their order, and
// builds the index before returning. Records repeating an earlier id are
// dropped so identifiers stay unique.
func NewStore(initial []Transaction, opts ...Option) *Store {
	s := &Store{
		records: make([]*Transaction, 0, len(initial)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := make(map[int]struct{}, len(initial))
	for i := range initial {
		if _, dup := seen[initial[i].ID]; dup {
			continue
		}
		seen[initial[i].ID] = struct{}{}
		r := initial[i]
		s.records = append(s.records, &r)
	}
	s.index = NewIndex(s.records)
	return s
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Len()
}

// IDs returns the stored identifiers in ascending order.
func (s *Store) IDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.IDs()
}

// Snapshot returns copies of all records in store order.
func (s *Store) Snapshot() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyAll()
}

func (s *Store) copyAll() []Transaction {
	out := make([]Transaction, len(s.records))
	for i, r := range s.records {
		out[i] = *r
	}
	return out
}

// Create validates p, assigns the next identifier and appends the record.
func (s *Store) Create(p Payload) (Transaction, error) {
	for _, field := range requiredFields {
		if !p.has(field) {
			return Transaction{}, missingField(field)
		}
	}

	amount, err := ParseAmount(p[FieldAmount])
	if err != nil {
		return Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID()
	t := &Transaction{ID: id, Amount: amount}

	fields := []struct {
		name     string
		dst      *string
		fallback string
	}{
		{FieldType, &t.Type, ""},
		{FieldSender, &t.Sender, ""},
		{FieldReceiver, &t.Receiver, ""},
		{FieldCurrency, &t.Currency, DefaultCurrency},
		{FieldTimestamp, &t.Timestamp, s.now().UTC().Format(TimestampLayout)},
		{FieldStatus, &t.Status, DefaultStatus},
		{FieldReference, &t.Reference, DefaultReference(id)},
		{FieldDescription, &t.Description, ""},
	}
	for _, f := range fields {
		v, err := p.stringOr(f.name, f.fallback)
		if err != nil {
			return Transaction{}, err
		}
		*f.dst = v
	}

	s.records = append(s.records, t)
	s.index.Rebuild(s.records)
	return *t, nil
}

// nextID must be called with the write lock held.
func (s *Store) nextID() int {
	maxID := 0
	for _, r := range s.records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}

// Update overwrites the recognised fields of the record in place. The index
// needs no rebuild because it points at the same record.
func (s *Store) Update(id int, p Payload) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.index.Lookup(id)
	if !ok {
		return Transaction{}, ErrNotFound
	}
	if err := p.apply(t); err != nil {
		return Transaction{}, err
	}
	return *t, nil
}

// Delete removes every record carrying id and returns the one the index
// pointed at.
func (s *Store) Delete(id int) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.index.Lookup(id)
	if !ok {
		return Transaction{}, ErrNotFound
	}
	removed := *t

	kept := s.records[:0]
	for _, r := range s.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	clear(s.records[len(kept):])
	s.records = kept
	s.index.Rebuild(s.records)
	return removed, nil
}
