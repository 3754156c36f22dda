package alloc

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/internal/buf"
	"github.com/mcraney2/HeapAllocator/internal/format"
)

// Free releases the block addressed by ref and merges it with free
// neighbours. A ref that is nil, misaligned, outside the arena, not a block
// payload, or already free yields ErrInvalidPointer and changes nothing.
func (h *Heap) Free(ref Ref) error {
	if h.data == nil {
		return ErrNotInitialized
	}
	h.stats.FreeCalls++

	off, hdr, err := h.lookup(ref)
	if err != nil {
		h.stats.FreeRejected++
		h.log.Debug("free rejected", "ref", ref, "err", err)
		return err
	}
	if !hdr.Allocated {
		h.stats.FreeRejected++
		h.log.Debug("free rejected", "ref", ref, "reason", "double free")
		return fmt.Errorf("%w: %s already free", ErrInvalidPointer, ref)
	}

	// Read everything needed for the merge before writing anything.
	start, size, prevAllocated := off, hdr.Size, hdr.PrevAllocated
	forward, backward := false, false

	succ := off + hdr.Size
	if succ != h.sentinel {
		next, err := h.headerAt(succ)
		if err != nil {
			return err
		}
		if !next.Allocated {
			size += next.Size
			forward = true
		}
	}

	// The footer before this header only exists when the predecessor is free.
	if !hdr.PrevAllocated {
		p, phdr, err := h.prev(off)
		if err != nil {
			return err
		}
		start = p
		size += phdr.Size
		prevAllocated = phdr.PrevAllocated
		backward = true
	}

	// Clear the allocated bit in place even when the header ends up inside
	// a predecessor, so a second Free of ref is still recognized.
	hdr.Allocated = false
	if err := format.WriteHeader(h.data, off, hdr); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	merged := format.Header{Size: size, PrevAllocated: prevAllocated}
	if err := format.WriteHeader(h.data, start, merged); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := format.WriteFooter(h.data, format.FooterOffset(start, size), size); err != nil {
		return fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := h.setPrevAllocated(start+size, false); err != nil {
		return err
	}

	h.stats.BytesFreed += int64(hdr.Size)
	if forward {
		h.stats.CoalesceForward++
	}
	if backward {
		h.stats.CoalesceBackward++
	}
	if forward || backward {
		h.log.Debug("coalesce", "ref", ref, "start", start, "size", size, "forward", forward, "backward", backward)
	}
	return nil
}

// Payload returns the full payload of the allocated block addressed by ref.
func (h *Heap) Payload(ref Ref) ([]byte, error) {
	if h.data == nil {
		return nil, ErrNotInitialized
	}
	off, hdr, err := h.lookup(ref)
	if err != nil {
		return nil, err
	}
	if !hdr.Allocated {
		return nil, fmt.Errorf("%w: %s is free", ErrInvalidPointer, ref)
	}
	payload, ok := buf.Slice(h.data, off+format.HeaderSize, hdr.Size-format.HeaderSize)
	if !ok {
		return nil, fmt.Errorf("%w: payload of %s out of bounds", ErrCorrupt, ref)
	}
	return payload, nil
}

// lookup validates ref and decodes the header in front of it.
func (h *Heap) lookup(ref Ref) (int, format.Header, error) {
	p := int(ref)
	switch {
	case ref == NilRef:
		return 0, format.Header{}, fmt.Errorf("%w: nil reference", ErrInvalidPointer)
	case !format.IsAligned(p):
		return 0, format.Header{}, fmt.Errorf("%w: %s is not %d-byte aligned", ErrInvalidPointer, ref, format.Alignment)
	case p < format.FirstBlockOffset+format.HeaderSize || p >= h.sentinel:
		return 0, format.Header{}, fmt.Errorf("%w: %s outside arena", ErrInvalidPointer, ref)
	}

	off := p - format.HeaderSize
	hdr, err := format.ReadHeader(h.data, off)
	if err != nil {
		return 0, format.Header{}, fmt.Errorf("%w: %s: %w", ErrInvalidPointer, ref, err)
	}
	if hdr.Validate() != nil || off+hdr.Size > h.sentinel {
		return 0, format.Header{}, fmt.Errorf("%w: %s does not address a block", ErrInvalidPointer, ref)
	}

	if h.opts.VerifyPointers {
		found, err := h.findBlock(off)
		if err != nil {
			return 0, format.Header{}, err
		}
		if !found {
			return 0, format.Header{}, fmt.Errorf("%w: %s is not a block start", ErrInvalidPointer, ref)
		}
	}
	return off, hdr, nil
}
