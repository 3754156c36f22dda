package format

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/internal/buf"
)

// Header is the decoded form of a block header word.
//
// Header word layout (little-endian uint32):
//
//	bits 31..3  block size (multiple of 8, includes the header)
//	bit  1      previous block in address order is allocated
//	bit  0      this block is allocated
type Header struct {
	Size          int
	Allocated     bool
	PrevAllocated bool
}

// Sentinel is the decoded end marker.
var Sentinel = Header{Allocated: true}

// IsSentinel reports whether h is the end marker.
func (h Header) IsSentinel() bool {
	return h == Sentinel
}

// Validate checks that h describes a real block.
func (h Header) Validate() error {
	if h.Size < MinBlockSize || !IsAligned(h.Size) {
		return fmt.Errorf("%w: %d", ErrBadSize, h.Size)
	}
	return nil
}

// String renders h in the same used/Free vocabulary as the block dump.
func (h Header) String() string {
	if h.IsSentinel() {
		return "sentinel"
	}
	return fmt.Sprintf("size=%d status=%s prev=%s", h.Size, StatusName(h.Allocated), StatusName(h.PrevAllocated))
}

// StatusName returns "used" for allocated and "Free" otherwise.
func StatusName(allocated bool) string {
	if allocated {
		return "used"
	}
	return "Free"
}

// EncodeHeader packs h into a header word.
func EncodeHeader(h Header) uint32 {
	w := uint32(h.Size) &^ flagMask
	if h.Allocated {
		w |= flagAllocated
	}
	if h.PrevAllocated {
		w |= flagPrevAllocated
	}
	return w
}

// DecodeHeader unpacks a header word.
func DecodeHeader(w uint32) Header {
	return Header{
		Size:          int(w &^ flagMask),
		Allocated:     w&flagAllocated != 0,
		PrevAllocated: w&flagPrevAllocated != 0,
	}
}

// ReadHeader decodes the header word at off.
func ReadHeader(b []byte, off int) (Header, error) {
	w, err := readWord(b, off)
	if err != nil {
		return Header{}, fmt.Errorf("header at %d: %w", off, err)
	}
	return DecodeHeader(w), nil
}

// WriteHeader encodes h at off.
func WriteHeader(b []byte, off int, h Header) error {
	if err := writeWord(b, off, EncodeHeader(h)); err != nil {
		return fmt.Errorf("header at %d: %w", off, err)
	}
	return nil
}

// ReadFooter returns the size stored in the footer word at off.
func ReadFooter(b []byte, off int) (int, error) {
	w, err := readWord(b, off)
	if err != nil {
		return 0, fmt.Errorf("footer at %d: %w", off, err)
	}
	return int(w), nil
}

// WriteFooter stores size in the footer word at off.
func WriteFooter(b []byte, off, size int) error {
	if err := writeWord(b, off, uint32(size)); err != nil {
		return fmt.Errorf("footer at %d: %w", off, err)
	}
	return nil
}

// FooterOffset returns the footer position for a block at off of the given size.
func FooterOffset(off, size int) int {
	return off + size - FooterSize
}

// WriteSentinel stores the end marker at off.
func WriteSentinel(b []byte, off int) error {
	return writeWord(b, off, SentinelWord)
}

func readWord(b []byte, off int) (uint32, error) {
	if _, err := buf.CheckRange(len(b), off, HeaderSize); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	return buf.U32LE(b[off:]), nil
}

func writeWord(b []byte, off int, w uint32) error {
	if _, err := buf.CheckRange(len(b), off, HeaderSize); err != nil {
		return fmt.Errorf("%w: %v", ErrTruncated, err)
	}
	buf.PutU32LE(b[off:], w)
	return nil
}
