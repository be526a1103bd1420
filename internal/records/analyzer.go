package records

import (
	"math"
	"math/rand"
	"time"
)

type StrategyTiming struct {
	Average time.Duration `json:"average"`
	Total   time.Duration `json:"total"`
	Min     time.Duration `json:"min"`
	Max     time.Duration `json:"max"`
}

// Report compares the lookup strategies over the same random workload.
type Report struct {
	TotalTransactions int            `json:"total_transactions"`
	Iterations        int            `json:"iterations"`
	LinearScan        StrategyTiming `json:"linear_scan"`
	IndexLookup       StrategyTiming `json:"index_lookup"`
	BinarySearch      StrategyTiming `json:"binary_search"`
	// LinearVsIndexSpeedup is 0 when index lookups were too fast to measure.
	LinearVsIndexSpeedup float64 `json:"linear_vs_index_speedup"`
}

// Analyze times iterations id lookups with the linear scan and the index,
// and iterations binary searches over amounts drawn from the store.
func Analyze(e *Engine, iterations int, rng *rand.Rand) (Report, error) {
	if iterations < 1 {
		return Report{}, &ValidationError{Field: "iterations", Reason: "must be at least 1"}
	}

	snapshot := e.store.Snapshot()
	known := e.store.IDs()
	if len(snapshot) == 0 || len(known) == 0 {
		return Report{}, ErrEmptyStore
	}

	ids := make([]int, iterations)
	amounts := make([]float64, iterations)
	for i := range iterations {
		ids[i] = known[rng.Intn(len(known))]
		amounts[i] = snapshot[rng.Intn(len(snapshot))].Amount
	}

	report := Report{
		TotalTransactions: len(snapshot),
		Iterations:        iterations,
		LinearScan: measure(ids, func(id int) {
			_, _ = e.LinearScanByID(id)
		}),
		IndexLookup: measure(ids, func(id int) {
			_, _ = e.LookupByID(id)
		}),
		BinarySearch: measure(amounts, func(amount float64) {
			_ = e.BinarySearchByAmount(amount)
		}),
	}

	if report.IndexLookup.Average > 0 {
		report.LinearVsIndexSpeedup = float64(report.LinearScan.Average) / float64(report.IndexLookup.Average)
	}
	return report, nil
}

func measure[T any](inputs []T, run func(T)) StrategyTiming {
	timing := StrategyTiming{Min: time.Duration(math.MaxInt64)}
	for _, in := range inputs {
		start := time.Now()
		run(in)
		elapsed := time.Since(start)

		timing.Total += elapsed
		timing.Min = min(timing.Min, elapsed)
		timing.Max = max(timing.Max, elapsed)
	}
	timing.Average = timing.Total / time.Duration(len(inputs))
	return timing
}
