package alloc

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/internal/buf"
	"github.com/mcraney2/HeapAllocator/internal/format"
)

// headerAt decodes the header at off. off must lie in the block area or on
// the sentinel.
func (h *Heap) headerAt(off int) (format.Header, error) {
	if off < format.FirstBlockOffset || off > h.sentinel {
		return format.Header{}, fmt.Errorf("%w: offset %d outside block area", ErrCorrupt, off)
	}
	hdr, err := format.ReadHeader(h.data, off)
	if err != nil {
		return format.Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if off == h.sentinel {
		if !hdr.IsSentinel() {
			return format.Header{}, fmt.Errorf("%w: end marker overwritten (%s)", ErrCorrupt, hdr)
		}
		return hdr, nil
	}
	if err := hdr.Validate(); err != nil {
		return format.Header{}, fmt.Errorf("%w: block at %d: %w", ErrCorrupt, off, err)
	}
	return hdr, nil
}

// next returns the offset of the block following the block at off.
func (h *Heap) next(off int, hdr format.Header) (int, error) {
	n, ok := buf.AddOverflowSafe(off, hdr.Size)
	if !ok || n > h.sentinel {
		return 0, fmt.Errorf("%w: block at %d (size %d) runs past the end marker", ErrCorrupt, off, hdr.Size)
	}
	return n, nil
}

// prev steps back from the block at off using the predecessor's footer. It
// is only meaningful when the block's PrevAllocated bit is clear: allocated
// blocks carry no footer.
func (h *Heap) prev(off int) (int, format.Header, error) {
	if off <= format.FirstBlockOffset {
		return 0, format.Header{}, fmt.Errorf("%w: block at %d has no predecessor", ErrCorrupt, off)
	}
	size, err := format.ReadFooter(h.data, off-format.FooterSize)
	if err != nil {
		return 0, format.Header{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	p := off - size
	if size < format.MinBlockSize || !format.IsAligned(size) || p < format.FirstBlockOffset {
		return 0, format.Header{}, fmt.Errorf("%w: footer before %d holds size %d", ErrCorrupt, off, size)
	}
	hdr, err := h.headerAt(p)
	if err != nil {
		return 0, format.Header{}, err
	}
	if hdr.Allocated || hdr.Size != size {
		return 0, format.Header{}, fmt.Errorf("%w: footer before %d (size %d) disagrees with header %s", ErrCorrupt, off, size, hdr)
	}
	return p, hdr, nil
}

// setPrevAllocated rewrites the PrevAllocated bit of the block at off.
// The end marker is never rewritten.
func (h *Heap) setPrevAllocated(off int, allocated bool) error {
	if off == h.sentinel {
		return nil
	}
	hdr, err := h.headerAt(off)
	if err != nil {
		return err
	}
	if hdr.PrevAllocated == allocated {
		return nil
	}
	hdr.PrevAllocated = allocated
	if err := format.WriteHeader(h.data, off, hdr); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return nil
}

// Walk calls fn for every block in address order, stopping at the end
// marker or when fn returns false.
func (h *Heap) Walk(fn func(Block) bool) error {
	if h.data == nil {
		return ErrNotInitialized
	}
	off := format.FirstBlockOffset
	for i := 1; off != h.sentinel; i++ {
		hdr, err := h.headerAt(off)
		if err != nil {
			return err
		}
		b := Block{
			Index:         i,
			Offset:        off,
			Size:          hdr.Size,
			Allocated:     hdr.Allocated,
			PrevAllocated: hdr.PrevAllocated,
		}
		if !fn(b) {
			return nil
		}
		if off, err = h.next(off, hdr); err != nil {
			return err
		}
	}
	return nil
}

// Blocks returns every block in address order.
func (h *Heap) Blocks() ([]Block, error) {
	var blocks []Block
	err := h.Walk(func(b Block) bool {
		blocks = append(blocks, b)
		return true
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// Usage walks the arena and totals used and free bytes.
func (h *Heap) Usage() (Usage, error) {
	u := Usage{
		ArenaSize: len(h.data),
		Capacity:  h.Capacity(),
	}
	err := h.Walk(func(b Block) bool {
		u.Blocks++
		if b.Allocated {
			u.UsedBytes += b.Size
			return true
		}
		u.FreeBlocks++
		u.FreeBytes += b.Size
		if b.Size > u.LargestFree {
			u.LargestFree = b.Size
		}
		return true
	})
	return u, err
}

// findBlock reports whether a block header starts exactly at off.
func (h *Heap) findBlock(off int) (bool, error) {
	found := false
	err := h.Walk(func(b Block) bool {
		if b.Offset == off {
			found = true
		}
		return b.Offset < off
	})
	return found, err
}
