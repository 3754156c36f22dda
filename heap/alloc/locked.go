package alloc

import "sync"

// Locked serializes access to a Heap with a mutex so it can be shared
// between goroutines.
type Locked struct {
	mu sync.Mutex
	h  *Heap
}

// NewLocked wraps h. h must not be used directly afterwards.
func NewLocked(h *Heap) *Locked {
	return &Locked{h: h}
}

// Alloc calls Heap.Alloc under the lock.
func (l *Locked) Alloc(size int) (Ref, []byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Alloc(size)
}

// Free calls Heap.Free under the lock.
func (l *Locked) Free(ref Ref) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Free(ref)
}

// Usage calls Heap.Usage under the lock.
func (l *Locked) Usage() (Usage, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Usage()
}

// Stats calls Heap.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.h.Stats()
}

// Do runs fn with exclusive access to the underlying heap.
func (l *Locked) Do(fn func(h *Heap) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.h)
}

var (
	_ Allocator = (*Heap)(nil)
	_ Allocator = (*Locked)(nil)
)
