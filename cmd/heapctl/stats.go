package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/heap/script"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [script|-]",
		Short: "Run a script and show usage and counters",
		Long: `The stats command executes a heap script without printing its output
and then reports arena usage (used/free bytes, block counts, largest free
block) and operation counters (splits, merges, rejected frees).

Example:
  heapctl stats workload.heap
  heapctl stats workload.heap --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
}

// HeapStats is the JSON shape of the stats report.
type HeapStats struct {
	Usage       alloc.Usage `json:"usage"`
	Stats       alloc.Stats `json:"stats"`
	Fingerprint string      `json:"fingerprint"`
}

func runStats(args []string) error {
	ops, err := openScript(scriptArg(args))
	if err != nil {
		return err
	}

	opts := runnerOptions()
	opts.KeepGoing = true
	r := script.NewRunner(io.Discard, opts)
	if err := r.Run(ops); err != nil {
		return err
	}
	printVerbose("%d commands failed\n", r.Failed())

	u, err := r.Heap().Usage()
	if err != nil {
		return err
	}
	report := HeapStats{
		Usage:       u,
		Stats:       r.Heap().Stats(),
		Fingerprint: fmt.Sprintf("%016x", r.Heap().Fingerprint()),
	}

	if jsonOut {
		return printJSON(report)
	}
	if err := script.WriteStats(output(), report.Usage, report.Stats); err != nil {
		return err
	}
	printInfo("%-16s %s\n", "fingerprint:", report.Fingerprint)
	return nil
}
