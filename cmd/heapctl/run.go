package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcraney2/HeapAllocator/heap/script"
)

var (
	runKeepGoing      bool
	runEcho           bool
	runVerifyPointers bool
)

func init() {
	cmd := newRunCmd()
	cmd.Flags().BoolVarP(&runKeepGoing, "keep-going", "k", false, "Report failed commands and continue")
	cmd.Flags().BoolVar(&runEcho, "echo", false, "Print each command before running it")
	cmd.Flags().BoolVar(&runVerifyPointers, "verify-pointers", false, "Check freed references against the block chain")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [script|-]",
		Short: "Execute an allocation script",
		Long: `The run command executes a heap script, one command per line:

  init <size>, alloc <name> <size>, fill <name> <byte>,
  free <name>, dump, check, stats

With no argument or "-" the script is read from stdin.

Example:
  heapctl run workload.heap
  heapctl run --echo --relative workload.heap
  echo "init 4096
alloc a 100
dump" | heapctl run -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
}

func runRun(args []string) error {
	ops, err := openScript(scriptArg(args))
	if err != nil {
		return err
	}
	printVerbose("Parsed %d commands\n", len(ops))

	opts := runnerOptions()
	opts.KeepGoing = runKeepGoing
	opts.Echo = runEcho
	opts.Heap.VerifyPointers = runVerifyPointers

	r := script.NewRunner(output(), opts)
	if err := r.Run(ops); err != nil {
		return err
	}
	if n := r.Failed(); n > 0 {
		return fmt.Errorf("%d of %d commands failed", n, len(ops))
	}
	return nil
}
