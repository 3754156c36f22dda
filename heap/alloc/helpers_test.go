package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcraney2/HeapAllocator/heap/verify"
	"github.com/mcraney2/HeapAllocator/internal/format"
	"github.com/mcraney2/HeapAllocator/internal/region"
)

// separatorSize is the block size of the allocated spacers placed between
// free blocks in layout tests.
const separatorSize = format.MinBlockSize

// testOptions backs arenas with Go memory and rounds only to 8 bytes, so
// tests get arenas of exactly the requested size.
func testOptions() *Options {
	return &Options{
		PageSize: format.Alignment,
		Reserve:  region.Heap,
	}
}

// newTestHeap creates a heap whose arena is exactly length bytes.
func newTestHeap(t testing.TB, length int) *Heap {
	t.Helper()
	h, err := New(length, testOptions())
	require.NoError(t, err)
	require.Equal(t, length, h.Len())
	return h
}

// payloadFor returns the payload size that produces a block of exactly blockSize bytes.
func payloadFor(blockSize int) int {
	return blockSize - format.HeaderSize
}

// newHeapWithFreeLayout builds a heap whose first blocks are free blocks of
// the given sizes, each followed by an allocated 8-byte separator, with one
// large free block filling the rest of the arena. It returns the header
// offsets of the requested free blocks.
func newHeapWithFreeLayout(t testing.TB, freeSizes []int, tail int) (*Heap, []int) {
	t.Helper()
	total := format.ReservedBytes + tail
	for _, sz := range freeSizes {
		total += sz + separatorSize
	}
	h := newTestHeap(t, total)

	offsets := make([]int, len(freeSizes))
	refs := make([]Ref, len(freeSizes))
	for i, sz := range freeSizes {
		ref, _, err := h.Alloc(payloadFor(sz))
		require.NoError(t, err)
		refs[i] = ref
		offsets[i] = int(ref) - format.HeaderSize

		_, _, err = h.Alloc(payloadFor(separatorSize))
		require.NoError(t, err)
	}
	for _, ref := range refs {
		require.NoError(t, h.Free(ref))
	}
	assertInvariants(t, h)
	return h, offsets
}

// headerAtOffset decodes the header at off.
func headerAtOffset(t testing.TB, h *Heap, off int) format.Header {
	t.Helper()
	hdr, err := format.ReadHeader(h.Bytes(), off)
	require.NoError(t, err)
	return hdr
}

// assertInvariants runs every arena check.
func assertInvariants(t testing.TB, h *Heap) {
	t.Helper()
	require.NoError(t, verify.AllInvariants(h.Bytes()))
}

// requireSingleFreeBlock checks that the arena is back to one free block.
func requireSingleFreeBlock(t testing.TB, h *Heap) {
	t.Helper()
	blocks, err := h.Blocks()
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	require.False(t, blocks[0].Allocated)
	require.True(t, blocks[0].PrevAllocated)
	require.Equal(t, h.Capacity(), blocks[0].Size)
}
