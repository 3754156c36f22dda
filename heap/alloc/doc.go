// Package alloc implements a best-fit boundary-tag heap over a single arena.
//
// # Overview
//
// A Heap owns one contiguous byte region reserved once at Init and never
// grown, shrunk, or returned to the operating system. The region is carved
// into variable-length blocks. Every block starts with a 4-byte header
// carrying its size and two status bits; free blocks also end with a 4-byte
// footer repeating the size so the block can be found by stepping backward
// from its successor.
//
//	offset 0     4 bytes padding (keeps payloads 8-byte aligned)
//	offset 4     first block header
//	...          blocks
//	len-4        end sentinel (header word 1)
//
// # Operations
//
//   - Init(size): round size up to the page size, reserve the region and
//     format it as one free block followed by the sentinel.
//   - Alloc(size): best-fit scan in address order. An exact match stops the
//     scan; otherwise the smallest larger free block wins, first in address
//     order on ties. Blocks leaving at least 8 spare bytes are split.
//   - Free(ref): validate the reference, mark the block free and merge it
//     with a free successor and a free predecessor in one pass.
//
// # Usage Example
//
//	h, err := alloc.New(4096, nil)
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := h.Alloc(100)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	err = h.Free(ref)
//
// # References
//
// A Ref is the arena-relative offset of a payload. Refs are always multiples
// of 8 and never 0, so the zero Ref plays the role of a null pointer.
//
// # Thread Safety
//
// Heap instances are not thread-safe. Callers must synchronize access
// externally or wrap the heap in a Locked.
//
// # Related Packages
//
//   - github.com/mcraney2/HeapAllocator/heap/verify: invariant checks over arena bytes
//   - github.com/mcraney2/HeapAllocator/heap/printer: block table dump
//   - github.com/mcraney2/HeapAllocator/internal/format: header and footer encoding
package alloc
