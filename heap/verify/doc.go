// Package verify checks the structural invariants of a heap arena.
//
// # Overview
//
// The checks work on raw arena bytes so they can run against any arena,
// including one assembled by hand in a test. They never modify the data.
//
// Validation categories:
//   - Layout: padding, block chain, sizes, alignment, end marker position
//   - Footers: every free block ends with a footer equal to its size
//   - PrevBits: every PrevAllocated bit matches the real predecessor
//   - Coalescing: no two free blocks are adjacent
//
// # Quick Start
//
//	if err := verify.AllInvariants(h.Bytes()); err != nil {
//	    t.Fatalf("heap invariants violated: %v", err)
//	}
//
// # ValidationError
//
// Every check returns *ValidationError on failure:
//
//	type ValidationError struct {
//	    Type    string // Check that failed (e.g., "Footers")
//	    Message string // Human-readable description
//	    Offset  int    // Arena offset of the offending block (-1 if N/A)
//	}
//
// # Related Packages
//
//   - github.com/mcraney2/HeapAllocator/heap/alloc: the allocator whose arenas are checked
//   - github.com/mcraney2/HeapAllocator/internal/format: header and footer encoding
package verify
