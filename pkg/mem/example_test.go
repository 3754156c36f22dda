package mem_test

import (
	"fmt"

	"github.com/mcraney2/HeapAllocator/pkg/mem"
)

// Example allocates, fills and releases a block on the process heap.
func Example() {
	if err := mem.Init(4096); err != nil {
		fmt.Printf("init failed: %v\n", err)
		return
	}
	ref, err := mem.Alloc(64)
	if err != nil {
		fmt.Printf("alloc failed: %v\n", err)
		return
	}
	buf, _ := mem.Bytes(ref)
	copy(buf, "payload")

	if err := mem.Free(ref); err != nil {
		fmt.Printf("free failed: %v\n", err)
	}
}
