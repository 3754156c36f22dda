package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/heap/printer"
)

var demoSize int

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoSize, "size", 4096, "Region size requested from the system")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through allocation, splitting and coalescing",
		Long: `The demo command initializes a heap and runs a fixed sequence of
allocations and frees, printing the block list after every step so the
effect of best-fit placement, splitting and coalescing is visible.

Example:
  heapctl demo
  heapctl demo --size 8192 --relative`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(args)
		},
	}
}

type demoStep struct {
	title string
	run   func(h *alloc.Heap, refs map[string]alloc.Ref) error
}

func demoAlloc(name string, size int) func(*alloc.Heap, map[string]alloc.Ref) error {
	return func(h *alloc.Heap, refs map[string]alloc.Ref) error {
		ref, _, err := h.Alloc(size)
		if err != nil {
			return err
		}
		refs[name] = ref
		return nil
	}
}

func demoFree(name string) func(*alloc.Heap, map[string]alloc.Ref) error {
	return func(h *alloc.Heap, refs map[string]alloc.Ref) error {
		return h.Free(refs[name])
	}
}

// demoSteps mirrors a classic allocator walkthrough: carve blocks, open
// holes, show best fit picking the tightest hole, then coalesce everything.
var demoSteps = []demoStep{
	{"alloc a 40", demoAlloc("a", 40)},
	{"alloc b 20", demoAlloc("b", 20)},
	{"alloc c 60", demoAlloc("c", 60)},
	{"alloc d 20", demoAlloc("d", 20)},
	{"alloc e 100", demoAlloc("e", 100)},
	{"free a (hole of 48)", demoFree("a")},
	{"free c (hole of 64)", demoFree("c")},
	{"alloc f 44 (best fit takes the 48-byte hole exactly)", demoAlloc("f", 44)},
	{"free b (merges with the 64-byte hole)", demoFree("b")},
	{"free d (merges backward)", demoFree("d")},
	{"free f (merges forward)", demoFree("f")},
	{"free e (merges both ways into one free block)", demoFree("e")},
}

func runDemo(args []string) error {
	opts := alloc.DefaultOptions()
	opts.Logger = logger
	h, err := alloc.New(demoSize, &opts)
	if err != nil {
		return fmt.Errorf("failed to initialize heap: %w", err)
	}

	popts := printerOptions()
	out := output()
	refs := make(map[string]alloc.Ref)

	printInfo("init %d (arena of %d bytes)\n", demoSize, h.Len())
	if err := printer.Fprint(out, h, popts); err != nil {
		return err
	}
	for i, step := range demoSteps {
		if err := step.run(h, refs); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.title, err)
		}
		printInfo("\n%s\n%s\n", step.title, strings.Repeat("=", len(step.title)))
		if err := printer.Fprint(out, h, popts); err != nil {
			return err
		}
	}
	return nil
}
