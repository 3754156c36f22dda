package alloc

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/mcraney2/HeapAllocator/internal/format"
)

// maxArenaSize keeps every block size representable in a header word.
const maxArenaSize = 0x7FFFFFFF

// Heap is a best-fit allocator over a single reserved arena.
// The zero value is an uninitialized heap; call Init before use.
type Heap struct {
	data     []byte
	sentinel int // offset of the end marker
	opts     Options
	log      *slog.Logger
	stats    Stats
}

// New creates a heap and initializes it with an arena of at least size bytes.
//
// Parameters:
//   - size: requested region size, rounded up to the page size
//   - opts: heap options (use nil for DefaultOptions)
func New(size int, opts *Options) (*Heap, error) {
	h := &Heap{}
	if opts != nil {
		h.opts = *opts
	}
	if err := h.Init(size); err != nil {
		return nil, err
	}
	return h, nil
}

// NewWithOptions returns an uninitialized heap that Init will configure with opts.
func NewWithOptions(opts Options) *Heap {
	return &Heap{opts: opts}
}

// Init reserves the arena and formats it as a single free block followed by
// the end sentinel. A heap can be initialized once; later calls return
// ErrAlreadyInitialized and leave the existing arena untouched. A failed
// reservation leaves the heap uninitialized so Init may be retried.
func (h *Heap) Init(size int) error {
	if h.data != nil {
		return ErrAlreadyInitialized
	}
	if size <= 0 {
		return fmt.Errorf("%w: region size %d is not positive", ErrInvalidSize, size)
	}

	opts := h.opts.withDefaults()
	if !format.IsAligned(opts.PageSize) {
		return fmt.Errorf("%w: page size %d is not a multiple of %d", ErrInvalidSize, opts.PageSize, format.Alignment)
	}
	length, ok := format.AlignUp(size, opts.PageSize)
	if !ok || length > maxArenaSize {
		return fmt.Errorf("%w: region size %d exceeds %d", ErrInvalidSize, size, maxArenaSize)
	}
	if length < format.ReservedBytes+format.MinBlockSize {
		return fmt.Errorf("%w: region of %d bytes cannot hold a block", ErrInvalidSize, length)
	}

	data, release, err := opts.Reserve(length)
	if err != nil {
		opts.Logger.Error("reserve failed", "length", length, "err", err)
		return fmt.Errorf("%w: %w", ErrReserve, err)
	}
	if len(data) != length {
		if release != nil {
			if rerr := release(); rerr != nil {
				opts.Logger.Error("release failed", "length", len(data), "err", rerr)
			}
		}
		return fmt.Errorf("%w: got %d bytes, want %d", ErrReserve, len(data), length)
	}

	first := format.FirstBlockOffset
	capacity := length - format.ReservedBytes
	sentinel := first + capacity

	// The first block has no real predecessor; it is treated as allocated.
	if err := format.WriteHeader(data, first, format.Header{Size: capacity, PrevAllocated: true}); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := format.WriteFooter(data, format.FooterOffset(first, capacity), capacity); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := format.WriteSentinel(data, sentinel); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	h.data = data
	h.sentinel = sentinel
	h.opts = opts
	h.log = opts.Logger
	h.log.Debug("heap initialized",
		"requested", size,
		"arena", length,
		"page_size", opts.PageSize,
		"capacity", capacity,
	)
	return nil
}

// Initialized reports whether Init has succeeded.
func (h *Heap) Initialized() bool {
	return h.data != nil
}

// Bytes returns the arena. It is exposed for read-only inspection
// (verification and dumps); writing through it corrupts the heap.
func (h *Heap) Bytes() []byte {
	return h.data
}

// Len returns the arena size in bytes.
func (h *Heap) Len() int {
	return len(h.data)
}

// Capacity returns the number of bytes covered by blocks.
func (h *Heap) Capacity() int {
	if h.data == nil {
		return 0
	}
	return len(h.data) - format.ReservedBytes
}

// Base returns the address of the first arena byte, or 0 before Init.
func (h *Heap) Base() uintptr {
	if len(h.data) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&h.data[0]))
}

// Stats returns a copy of the operation counters.
func (h *Heap) Stats() Stats {
	return h.stats
}
