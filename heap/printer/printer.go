// Package printer renders the block list of a heap for diagnostics.
//
// Output is read-only: printing walks the arena but never changes it and
// nothing in the allocator depends on it.
package printer

import (
	"fmt"
	"io"
	"os"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/internal/format"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs the block table.
	FormatText Format = "text"

	// FormatJSON outputs the same rows and totals as JSON.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// Relative prints arena offsets instead of absolute addresses.
	// Default: false
	Relative bool
}

// DefaultOptions returns the defaults used by Dump.
func DefaultOptions() Options {
	return Options{
		Format:   FormatText,
		Relative: false,
	}
}

// Row is one line of the block list.
type Row struct {
	No     int
	Status string
	Prev   string
	Begin  uint64
	End    uint64
	Size   int
}

// Report is the block list of a heap plus its totals.
type Report struct {
	Rows []Row
	Used int
	Free int
}

// Total is the sum of used and free block sizes.
func (r Report) Total() int {
	return r.Used + r.Free
}

// Collect walks h and builds its report. Begin is the header address and
// End the address of the block's last byte.
func Collect(h *alloc.Heap, opts Options) (Report, error) {
	var base uint64
	if !opts.Relative {
		base = uint64(h.Base())
	}

	var rep Report
	err := h.Walk(func(b alloc.Block) bool {
		begin := base + uint64(b.Offset)
		rep.Rows = append(rep.Rows, Row{
			No:     b.Index,
			Status: format.StatusName(b.Allocated),
			Prev:   format.StatusName(b.PrevAllocated),
			Begin:  begin,
			End:    begin + uint64(b.Size) - 1,
			Size:   b.Size,
		})
		if b.Allocated {
			rep.Used += b.Size
		} else {
			rep.Free += b.Size
		}
		return true
	})
	if err != nil {
		return Report{}, err
	}
	return rep, nil
}

// Printer writes heap reports to a writer.
type Printer struct {
	heap   *alloc.Heap
	writer io.Writer
	opts   Options
}

// New creates a Printer for h writing to w.
func New(h *alloc.Heap, w io.Writer, opts Options) *Printer {
	return &Printer{heap: h, writer: w, opts: opts}
}

// Print writes the block list in the configured format.
func (p *Printer) Print() error {
	rep, err := Collect(p.heap, p.opts)
	if err != nil {
		return err
	}
	switch p.opts.Format {
	case FormatText, "":
		return writeText(p.writer, rep)
	case FormatJSON:
		return writeJSON(p.writer, rep)
	default:
		return fmt.Errorf("printer: unsupported format %q", p.opts.Format)
	}
}

// Fprint writes the block list of h to w.
func Fprint(w io.Writer, h *alloc.Heap, opts Options) error {
	return New(h, w, opts).Print()
}

// Dump writes the text block list of h to stdout.
func Dump(h *alloc.Heap) error {
	return Fprint(os.Stdout, h, DefaultOptions())
}
