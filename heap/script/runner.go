package script

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/heap/printer"
	"github.com/mcraney2/HeapAllocator/heap/verify"
)

// ErrUnknownName is returned when a command names a block that was never
// allocated.
var ErrUnknownName = errors.New("script: unknown name")

// Options controls how a Runner executes a script.
type Options struct {
	// Heap configures the heap created by the first init command.
	Heap alloc.Options

	// Printer controls dump output.
	Printer printer.Options

	// KeepGoing reports a failed command and moves on instead of stopping.
	KeepGoing bool

	// Echo prints each command before running it.
	Echo bool

	// Logger receives one debug record per command. Nil discards.
	Logger *slog.Logger
}

// DefaultOptions returns options with the default heap and printer settings.
func DefaultOptions() Options {
	return Options{
		Heap:    alloc.DefaultOptions(),
		Printer: printer.DefaultOptions(),
	}
}

// Runner executes parsed commands against a single heap.
type Runner struct {
	heap   *alloc.Heap
	out    io.Writer
	opts   Options
	log    *slog.Logger
	refs   map[string]alloc.Ref
	failed int
}

// NewRunner returns a Runner that writes command output to out.
func NewRunner(out io.Writer, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		heap: alloc.NewWithOptions(opts.Heap),
		out:  out,
		opts: opts,
		log:  log,
		refs: make(map[string]alloc.Ref),
	}
}

// Heap returns the heap the runner operates on.
func (r *Runner) Heap() *alloc.Heap {
	return r.heap
}

// Ref returns the reference bound to name.
func (r *Runner) Ref(name string) (alloc.Ref, bool) {
	ref, ok := r.refs[name]
	return ref, ok
}

// Failed returns the number of commands that failed under KeepGoing.
func (r *Runner) Failed() int {
	return r.failed
}

// Run executes ops in order. Without KeepGoing the first failure stops the
// run and is returned.
func (r *Runner) Run(ops []Op) error {
	for _, op := range ops {
		if r.opts.Echo {
			fmt.Fprintf(r.out, "> %s\n", op)
		}
		err := r.Exec(op)
		if err == nil {
			continue
		}
		err = fmt.Errorf("line %d: %s: %w", op.Line, op, err)
		if !r.opts.KeepGoing {
			return err
		}
		r.failed++
		fmt.Fprintf(r.out, "error: %v\n", err)
	}
	return nil
}

// Exec executes a single command.
func (r *Runner) Exec(op Op) error {
	r.log.Debug("exec", "line", op.Line, "op", op.String())

	switch op.Kind {
	case KindInit:
		return r.heap.Init(op.Size)

	case KindAlloc:
		ref, _, err := r.heap.Alloc(op.Size)
		if err != nil {
			return err
		}
		r.refs[op.Name] = ref
		if r.opts.Echo {
			fmt.Fprintf(r.out, "%s = %s\n", op.Name, ref)
		}
		return nil

	case KindFill:
		ref, err := r.lookup(op.Name)
		if err != nil {
			return err
		}
		payload, err := r.heap.Payload(ref)
		if err != nil {
			return err
		}
		for i := range payload {
			payload[i] = byte(op.Size)
		}
		return nil

	case KindFree:
		ref, err := r.lookup(op.Name)
		if err != nil {
			return err
		}
		return r.heap.Free(ref)

	case KindDump:
		return printer.Fprint(r.out, r.heap, r.opts.Printer)

	case KindCheck:
		if !r.heap.Initialized() {
			return alloc.ErrNotInitialized
		}
		if err := verify.AllInvariants(r.heap.Bytes()); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "ok")
		return nil

	case KindStats:
		u, err := r.heap.Usage()
		if err != nil {
			return err
		}
		return WriteStats(r.out, u, r.heap.Stats())
	}
	return fmt.Errorf("unsupported command %s", op.Kind)
}

func (r *Runner) lookup(name string) (alloc.Ref, error) {
	ref, ok := r.refs[name]
	if !ok {
		return alloc.NilRef, fmt.Errorf("%w %q", ErrUnknownName, name)
	}
	return ref, nil
}

// WriteStats prints usage totals and operation counters with grouped digits.
func WriteStats(w io.Writer, u alloc.Usage, st alloc.Stats) error {
	p := message.NewPrinter(language.English)
	rows := []struct {
		label string
		value any
	}{
		{"arena size", u.ArenaSize},
		{"capacity", u.Capacity},
		{"used bytes", u.UsedBytes},
		{"free bytes", u.FreeBytes},
		{"blocks", u.Blocks},
		{"free blocks", u.FreeBlocks},
		{"largest free", u.LargestFree},
		{"alloc calls", st.AllocCalls},
		{"alloc failures", st.AllocFailures},
		{"free calls", st.FreeCalls},
		{"free rejected", st.FreeRejected},
		{"splits", st.SplitCount},
		{"forward merges", st.CoalesceForward},
		{"backward merges", st.CoalesceBackward},
		{"bytes allocated", st.BytesAllocated},
		{"bytes freed", st.BytesFreed},
	}
	for _, row := range rows {
		if _, err := p.Fprintf(w, "%-16s %d\n", row.label+":", row.value); err != nil {
			return err
		}
	}
	return nil
}
