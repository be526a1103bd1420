package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/NgigiN/momo/internal/records"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		iterations int
		seed       int64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Compare linear scan, index lookup and binary search",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			return runBench(iterations, seed)
		},
	}

	cmd.Flags().IntVarP(&iterations, "iterations", "n", 100, "number of lookups per strategy")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for the workload")
	return cmd
}

func runBench(iterations int, seed int64) error {
	engine := records.NewEngine(loadStore(cfg))

	report, err := records.Analyze(engine, iterations, rand.New(rand.NewSource(seed)))
	if err != nil {
		return fmt.Errorf("failed to analyze search performance: %w", err)
	}

	pterm.DefaultSection.Printf("Search performance over %d transactions (%d iterations)",
		report.TotalTransactions, report.Iterations)

	rows := pterm.TableData{{"Strategy", "Average", "Total", "Min", "Max"}}
	for _, row := range []struct {
		name   string
		timing records.StrategyTiming
	}{
		{"Linear scan (id)", report.LinearScan},
		{"Index lookup (id)", report.IndexLookup},
		{"Binary search (amount)", report.BinarySearch},
	} {
		rows = append(rows, []string{
			row.name,
			row.timing.Average.String(),
			row.timing.Total.String(),
			row.timing.Min.String(),
			row.timing.Max.String(),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	if report.LinearVsIndexSpeedup > 0 {
		pterm.Info.Printf("Index lookup is %.1fx faster than the linear scan\n", report.LinearVsIndexSpeedup)
	} else {
		pterm.Info.Println("Index lookups were too fast to measure")
	}
	return nil
}
