package records

import (
	"errors"
	"slices"
	"testing"
)

func amountsStore() *Store {
	amounts := []float64{500, 1000, 250, 1000, 7500, 1000, 0, 250}
	txs := make([]Transaction, len(amounts))
	types := []string{"Transfer", "Deposit", "Withdrawal", "Payment"}
	for i, a := range amounts {
		txs[i] = Transaction{ID: i + 1, Amount: a, Type: types[i%len(types)]}
	}
	return NewStore(txs)
}

func ids(txs []Transaction) []int {
	out := make([]int, len(txs))
	for i, tx := range txs {
		out[i] = tx.ID
	}
	return out
}

func sortedIDs(txs []Transaction) []int {
	out := ids(txs)
	slices.Sort(out)
	return out
}

func TestLookupStrategiesAgree(t *testing.T) {
	e := NewEngine(amountsStore())
	for id := -1; id <= 10; id++ {
		byIndex, errIndex := e.LookupByID(id)
		byScan, errScan := e.LinearScanByID(id)
		if !errors.Is(errIndex, errScan) {
			t.Fatalf("id %d: index err %v, scan err %v", id, errIndex, errScan)
		}
		if byIndex != byScan {
			t.Fatalf("id %d: index %+v, scan %+v", id, byIndex, byScan)
		}
	}
}

func TestLinearScanByType(t *testing.T) {
	e := NewEngine(amountsStore())

	got := ids(e.LinearScanByType("Deposit"))
	if !slices.Equal(got, []int{2, 6}) {
		t.Fatalf("unexpected deposits %v", got)
	}
	if res := e.LinearScanByType("deposit"); len(res) != 0 {
		t.Fatalf("type match should be exact, got %v", ids(res))
	}
	if res := e.LinearScanByType("Missing"); res == nil {
		t.Fatalf("expected an empty, non-nil result")
	}
}

func TestLinearScanByAmountRange(t *testing.T) {
	e := NewEngine(amountsStore())
	cases := []struct {
		name     string
		min, max float64
		want     []int
	}{
		{"inclusive bounds", 250, 1000, []int{1, 2, 3, 4, 6, 8}},
		{"exact amount", 1000, 1000, []int{2, 4, 6}},
		{"inverted", 1000, 250, []int{}},
		{"zero", 0, 0, []int{7}},
		{"above all", 8000, 9000, []int{}},
	}
	for _, c := range cases {
		got := ids(e.LinearScanByAmountRange(c.min, c.max))
		if !slices.Equal(got, c.want) {
			t.Fatalf("%s: want %v, got %v", c.name, c.want, got)
		}
	}
}

func TestBinarySearchByAmountMatchesScan(t *testing.T) {
	e := NewEngine(amountsStore())
	for _, target := range []float64{0, 250, 500, 1000, 7500, 1, 999.99, 10000, -1} {
		got := sortedIDs(e.BinarySearchByAmount(target))
		want := sortedIDs(e.LinearScanByAmountRange(target, target))
		if !slices.Equal(got, want) {
			t.Fatalf("amount %v: binary %v, scan %v", target, got, want)
		}
	}
}

func TestBinarySearchByAmountAbsent(t *testing.T) {
	e := NewEngine(amountsStore())
	res := e.BinarySearchByAmount(123)
	if res == nil || len(res) != 0 {
		t.Fatalf("expected empty result, got %v", res)
	}

	empty := NewEngine(NewStore(nil))
	if res := empty.BinarySearchByAmount(0); len(res) != 0 {
		t.Fatalf("expected empty result on empty store, got %v", res)
	}
}

func TestBinarySearchDoesNotReorderStore(t *testing.T) {
	s := amountsStore()
	before := ids(s.Snapshot())
	NewEngine(s).BinarySearchByAmount(1000)
	if !slices.Equal(before, ids(s.Snapshot())) {
		t.Fatalf("binary search reordered the store")
	}
}

func TestBinarySearchExactFloatEquality(t *testing.T) {
	s := NewStore([]Transaction{{ID: 1, Amount: 0.3}})
	e := NewEngine(s)
	a, b := 0.1, 0.2
	if res := e.BinarySearchByAmount(a + b); len(res) != 0 {
		t.Fatalf("expected no match for 0.1+0.2 against 0.3")
	}
	if res := e.BinarySearchByAmount(0.3); len(res) != 1 {
		t.Fatalf("expected exact match for 0.3")
	}
}

func TestSearchReturnsCopies(t *testing.T) {
	s := amountsStore()
	e := NewEngine(s)

	tx, _ := e.LookupByID(1)
	tx.Amount = 1e9
	again, _ := e.LookupByID(1)
	if again.Amount == 1e9 {
		t.Fatalf("caller mutation leaked into the store")
	}
}
