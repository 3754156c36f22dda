package alloc

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/internal/format"
)

// Alloc allocates a block whose payload holds at least size bytes.
//
// It returns the payload reference and a slice of length size over the
// payload; the slice's capacity extends to the end of the block. On failure
// the arena is left untouched.
func (h *Heap) Alloc(size int) (Ref, []byte, error) {
	if h.data == nil {
		return NilRef, nil, ErrNotInitialized
	}
	h.stats.AllocCalls++

	if size <= 0 {
		h.stats.AllocFailures++
		return NilRef, nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	need, ok := format.BlockSizeFor(size)
	if !ok || need > h.Capacity() {
		h.stats.AllocFailures++
		h.log.Debug("alloc exceeds arena", "size", size, "capacity", h.Capacity())
		return NilRef, nil, fmt.Errorf("%w: %d bytes exceeds arena capacity %d", ErrOutOfMemory, size, h.Capacity())
	}

	off, hdr, err := h.findBestFit(need)
	if err != nil {
		h.stats.AllocFailures++
		h.log.Debug("alloc failed", "size", size, "need", need, "err", err)
		return NilRef, nil, err
	}

	blockSize, err := h.place(off, hdr, need)
	if err != nil {
		h.stats.AllocFailures++
		return NilRef, nil, err
	}
	h.stats.BytesAllocated += int64(blockSize)

	p := off + format.HeaderSize
	return Ref(p), h.data[p : p+size : off+blockSize], nil
}

// findBestFit scans every block in address order for the smallest free
// block of at least need bytes. An exact fit ends the scan; among equal
// sizes the lowest address wins.
func (h *Heap) findBestFit(need int) (int, format.Header, error) {
	best := -1
	var bestHdr format.Header

	off := format.FirstBlockOffset
	for off != h.sentinel {
		hdr, err := h.headerAt(off)
		if err != nil {
			return 0, format.Header{}, err
		}
		if !hdr.Allocated {
			switch {
			case hdr.Size == need:
				return off, hdr, nil
			case hdr.Size > need && (best < 0 || hdr.Size < bestHdr.Size):
				best, bestHdr = off, hdr
			}
		}
		if off, err = h.next(off, hdr); err != nil {
			return 0, format.Header{}, err
		}
	}

	if best < 0 {
		return 0, format.Header{}, fmt.Errorf("%w: no free block of %d bytes", ErrOutOfMemory, need)
	}
	return best, bestHdr, nil
}

// place marks the free block at off allocated, splitting off the tail when
// at least MinBlockSize bytes would remain. It returns the allocated size.
func (h *Heap) place(off int, hdr format.Header, need int) (int, error) {
	rem := hdr.Size - need
	if rem >= format.MinBlockSize {
		// Split: allocate head, the tail becomes a free block. The block
		// after the tail already records a free predecessor.
		h.stats.SplitCount++
		tail := off + need
		if err := format.WriteHeader(h.data, off, format.Header{Size: need, Allocated: true, PrevAllocated: hdr.PrevAllocated}); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if err := format.WriteHeader(h.data, tail, format.Header{Size: rem, PrevAllocated: true}); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		if err := format.WriteFooter(h.data, format.FooterOffset(tail, rem), rem); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
		}
		h.log.Debug("split", "off", off, "block", hdr.Size, "need", need, "remainder", rem)
		return need, nil
	}

	// Use entire block (absorb remainder)
	hdr.Allocated = true
	if err := format.WriteHeader(h.data, off, hdr); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := h.setPrevAllocated(off+hdr.Size, true); err != nil {
		return 0, err
	}
	return hdr.Size, nil
}
