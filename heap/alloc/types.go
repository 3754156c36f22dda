package alloc

import (
	"fmt"
	"log/slog"

	"github.com/mcraney2/HeapAllocator/internal/format"
	"github.com/mcraney2/HeapAllocator/internal/region"
)

// Ref is the arena-relative offset of a block payload.
type Ref uint32

// NilRef is the null reference.
const NilRef Ref = 0

func (r Ref) String() string {
	return fmt.Sprintf("%#x", uint32(r))
}

// Allocator is the method set shared by Heap and Locked.
type Allocator interface {
	// Alloc returns a reference to a payload of at least size bytes and a
	// slice of length size over it.
	Alloc(size int) (Ref, []byte, error)

	// Free releases the block addressed by ref.
	Free(ref Ref) error
}

// Options configures a Heap.
type Options struct {
	// PageSize is the granularity the requested region size is rounded up to.
	// Must be a multiple of 8. Default: region.PageSize()
	PageSize int

	// Reserve obtains the zero-filled backing region.
	// Default: region.Reserve (anonymous private mapping)
	Reserve region.ReserveFunc

	// Logger receives debug events (init, split, coalesce, failures).
	// Default: stderr when HEAP_LOG_ALLOC is set, otherwise discarded.
	Logger *slog.Logger

	// VerifyPointers makes Free and Payload confirm, by walking the chain,
	// that a reference addresses a real block start. Default: false
	VerifyPointers bool
}

// DefaultOptions returns the options New uses when given nil.
func DefaultOptions() Options {
	return Options{
		PageSize: region.PageSize(),
		Reserve:  region.Reserve,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.PageSize <= 0 {
		o.PageSize = def.PageSize
	}
	if o.Reserve == nil {
		o.Reserve = def.Reserve
	}
	o.Logger = resolveLogger(o.Logger)
	return o
}

// Block describes one block found while walking the arena.
type Block struct {
	Index         int // 1-based position in address order
	Offset        int // header offset from the arena start
	Size          int // total size including header
	Allocated     bool
	PrevAllocated bool
}

// End returns the offset one past the block's last byte.
func (b Block) End() int {
	return b.Offset + b.Size
}

// Payload returns the reference Alloc handed out (or would hand out) for b.
func (b Block) Payload() Ref {
	return Ref(b.Offset + format.HeaderSize)
}

// Usage summarizes the current block layout.
type Usage struct {
	ArenaSize   int // bytes reserved from the operating system
	Capacity    int // bytes covered by blocks (arena minus padding and sentinel)
	UsedBytes   int
	FreeBytes   int
	Blocks      int
	FreeBlocks  int
	LargestFree int
}

// Stats holds operation counters for testing and instrumentation.
type Stats struct {
	AllocCalls       int   // Total Alloc() calls
	AllocFailures    int   // Alloc() calls that returned an error
	FreeCalls        int   // Total Free() calls
	FreeRejected     int   // Free() calls refused during validation
	SplitCount       int   // Number of block splits
	CoalesceForward  int   // Merges with a free successor
	CoalesceBackward int   // Merges into a free predecessor
	BytesAllocated   int64 // Total block bytes handed out (including headers)
	BytesFreed       int64 // Total block bytes returned (before merging)
}
