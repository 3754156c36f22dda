package mem

import (
	"io"
	"os"
	"sync"

	"github.com/mcraney2/HeapAllocator/heap/alloc"
	"github.com/mcraney2/HeapAllocator/heap/printer"
)

var (
	mu      sync.Mutex
	heap    *alloc.Locked
	options = alloc.DefaultOptions()
)

// Init reserves the process heap with a region of at least size bytes.
func Init(size int) error {
	mu.Lock()
	defer mu.Unlock()
	if heap != nil {
		return alloc.ErrAlreadyInitialized
	}
	h := alloc.NewWithOptions(options)
	if err := h.Init(size); err != nil {
		return err
	}
	heap = alloc.NewLocked(h)
	return nil
}

func current() (*alloc.Locked, error) {
	mu.Lock()
	defer mu.Unlock()
	if heap == nil {
		return nil, alloc.ErrNotInitialized
	}
	return heap, nil
}

// Alloc reserves size bytes from the process heap.
func Alloc(size int) (alloc.Ref, error) {
	l, err := current()
	if err != nil {
		return alloc.NilRef, err
	}
	ref, _, err := l.Alloc(size)
	return ref, err
}

// Bytes returns the payload of the allocated block ref.
func Bytes(ref alloc.Ref) ([]byte, error) {
	l, err := current()
	if err != nil {
		return nil, err
	}
	var payload []byte
	err = l.Do(func(h *alloc.Heap) error {
		payload, err = h.Payload(ref)
		return err
	})
	return payload, err
}

// Free releases ref back to the process heap.
func Free(ref alloc.Ref) error {
	l, err := current()
	if err != nil {
		return err
	}
	return l.Free(ref)
}

// Dump prints the block list of the process heap to stdout.
func Dump() error {
	return Fdump(os.Stdout, printer.DefaultOptions())
}

// Fdump prints the block list of the process heap to w.
func Fdump(w io.Writer, opts printer.Options) error {
	l, err := current()
	if err != nil {
		return err
	}
	return l.Do(func(h *alloc.Heap) error {
		return printer.Fprint(w, h, opts)
	})
}

// Usage returns the current usage totals of the process heap.
func Usage() (alloc.Usage, error) {
	l, err := current()
	if err != nil {
		return alloc.Usage{}, err
	}
	return l.Usage()
}
