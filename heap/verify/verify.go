package verify

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/internal/format"
)

// ValidationError describes one invariant violation.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// block is one decoded header together with its position.
type block struct {
	off int
	hdr format.Header
}

// AllInvariants validates all arena invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func AllInvariants(data []byte) error {
	blocks, err := chain(data)
	if err != nil {
		return err
	}
	if err := footers(data, blocks); err != nil {
		return err
	}
	if err := prevBits(blocks); err != nil {
		return err
	}
	return coalescing(blocks)
}

// Layout validates that the block chain starts after the padding, is built
// from aligned blocks, and ends exactly on the end marker.
func Layout(data []byte) error {
	_, err := chain(data)
	return err
}

// Footers validates that every free block carries a footer equal to its size.
func Footers(data []byte) error {
	blocks, err := chain(data)
	if err != nil {
		return err
	}
	return footers(data, blocks)
}

// PrevBits validates every PrevAllocated bit against the real predecessor.
func PrevBits(data []byte) error {
	blocks, err := chain(data)
	if err != nil {
		return err
	}
	return prevBits(blocks)
}

// Coalescing validates that no two free blocks are adjacent.
func Coalescing(data []byte) error {
	blocks, err := chain(data)
	if err != nil {
		return err
	}
	return coalescing(blocks)
}

func chain(data []byte) ([]block, error) {
	const typ = "Layout"
	if len(data) < format.ReservedBytes+format.MinBlockSize {
		return nil, &ValidationError{
			Type:    typ,
			Message: fmt.Sprintf("arena too small: %d bytes", len(data)),
			Offset:  -1,
		}
	}
	if !format.IsAligned(len(data)) {
		return nil, &ValidationError{
			Type:    typ,
			Message: fmt.Sprintf("arena size %d not %d-byte aligned", len(data), format.Alignment),
			Offset:  -1,
		}
	}

	end := len(data) - format.SentinelSize
	marker, err := format.ReadHeader(data, end)
	if err != nil || !marker.IsSentinel() {
		return nil, &ValidationError{
			Type:    typ,
			Message: fmt.Sprintf("missing end marker (word %#x)", format.EncodeHeader(marker)),
			Offset:  end,
		}
	}

	var blocks []block
	total := 0
	off := format.FirstBlockOffset
	for off < end {
		hdr, err := format.ReadHeader(data, off)
		if err != nil {
			return nil, &ValidationError{Type: typ, Message: err.Error(), Offset: off}
		}
		if err := hdr.Validate(); err != nil {
			return nil, &ValidationError{Type: typ, Message: err.Error(), Offset: off}
		}
		if off+hdr.Size > end {
			return nil, &ValidationError{
				Type:    typ,
				Message: fmt.Sprintf("block of %d bytes runs past end marker at 0x%X", hdr.Size, end),
				Offset:  off,
			}
		}
		if !format.IsAligned(off + format.HeaderSize) {
			return nil, &ValidationError{
				Type:    typ,
				Message: "payload not 8-byte aligned",
				Offset:  off,
			}
		}
		blocks = append(blocks, block{off: off, hdr: hdr})
		total += hdr.Size
		off += hdr.Size
	}

	if total+format.ReservedBytes != len(data) {
		return nil, &ValidationError{
			Type:    typ,
			Message: fmt.Sprintf("blocks cover %d bytes, want %d", total, len(data)-format.ReservedBytes),
			Offset:  -1,
		}
	}
	return blocks, nil
}

func footers(data []byte, blocks []block) error {
	for _, b := range blocks {
		if b.hdr.Allocated {
			continue
		}
		size, err := format.ReadFooter(data, format.FooterOffset(b.off, b.hdr.Size))
		if err != nil {
			return &ValidationError{Type: "Footers", Message: err.Error(), Offset: b.off}
		}
		if size != b.hdr.Size {
			return &ValidationError{
				Type:    "Footers",
				Message: fmt.Sprintf("footer holds %d, header holds %d", size, b.hdr.Size),
				Offset:  b.off,
			}
		}
	}
	return nil
}

func prevBits(blocks []block) error {
	// The first block has no predecessor and is formatted as if it had an
	// allocated one.
	prevAllocated := true
	for _, b := range blocks {
		if b.hdr.PrevAllocated != prevAllocated {
			return &ValidationError{
				Type: "PrevBits",
				Message: fmt.Sprintf("prev bit says %s, predecessor is %s",
					format.StatusName(b.hdr.PrevAllocated), format.StatusName(prevAllocated)),
				Offset: b.off,
			}
		}
		prevAllocated = b.hdr.Allocated
	}
	return nil
}

func coalescing(blocks []block) error {
	for i := 1; i < len(blocks); i++ {
		if !blocks[i-1].hdr.Allocated && !blocks[i].hdr.Allocated {
			return &ValidationError{
				Type:    "Coalescing",
				Message: fmt.Sprintf("free block follows free block at 0x%X", blocks[i-1].off),
				Offset:  blocks[i].off,
			}
		}
	}
	return nil
}
