// Package format describes the on-arena layout of heap blocks: word sizes,
// alignment, the reserved padding and sentinel, and the header/footer words.
// Everything above this package works on decoded Header values; raw words
// exist only here.
package format

// Arena layout (offsets relative to the arena start):
//
//	0x00        4 bytes padding so every payload lands on an 8-byte boundary
//	0x04        header of the first block
//	...         blocks, each a multiple of 8 bytes
//	len-4       end sentinel word (value 1)
const (
	// HeaderSize is the size of a block header word.
	HeaderSize = 4

	// FooterSize is the size of a free block's trailing size word.
	FooterSize = 4

	// Alignment is the double-word boundary every block size and payload honors.
	Alignment = 8

	// AlignmentMask is used for round-up arithmetic.
	AlignmentMask = Alignment - 1

	// MinBlockSize is the smallest block that can hold a header and a footer.
	MinBlockSize = HeaderSize + FooterSize

	// FirstBlockOffset is where the first block header lives.
	FirstBlockOffset = 4

	// SentinelSize is the size of the header-only end marker.
	SentinelSize = HeaderSize

	// ReservedBytes is the arena space not owned by any block (padding + sentinel).
	ReservedBytes = FirstBlockOffset + SentinelSize

	// SentinelWord is the raw value of the end marker.
	SentinelWord uint32 = 1
)

// Header word flag bits.
const (
	flagAllocated     uint32 = 1 << 0
	flagPrevAllocated uint32 = 1 << 1
	flagMask                 = flagAllocated | flagPrevAllocated
)
