package format

import "github.com/mcraney2/HeapAllocator/internal/buf"

// IsAligned reports whether n sits on the 8-byte boundary.
func IsAligned(n int) bool {
	return n&AlignmentMask == 0
}

// AlignUp rounds n up to a multiple of unit. ok is false on overflow or a
// non-positive unit.
func AlignUp(n, unit int) (int, bool) {
	if unit <= 0 || n < 0 {
		return 0, false
	}
	rem := n % unit
	if rem == 0 {
		return n, true
	}
	return buf.AddOverflowSafe(n, unit-rem)
}

// BlockSizeFor returns the aligned block size needed to carry a payload of
// the given size. ok is false when the computation overflows.
func BlockSizeFor(payload int) (int, bool) {
	withHeader, ok := buf.AddOverflowSafe(payload, HeaderSize)
	if !ok {
		return 0, false
	}
	return AlignUp(withHeader, Alignment)
}
