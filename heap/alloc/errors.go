package alloc

import "errors"

var (
	// ErrAlreadyInitialized indicates Init was called on a heap that already owns an arena.
	ErrAlreadyInitialized = errors.New("alloc: heap already initialized")

	// ErrNotInitialized indicates an operation on a heap that has no arena yet.
	ErrNotInitialized = errors.New("alloc: heap not initialized")

	// ErrInvalidSize indicates a non-positive or unrepresentable size.
	ErrInvalidSize = errors.New("alloc: invalid size")

	// ErrOutOfMemory indicates that no free block large enough was found.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrInvalidPointer indicates a nil, misaligned, out-of-range, or already freed reference.
	ErrInvalidPointer = errors.New("alloc: invalid pointer")

	// ErrCorrupt indicates block metadata that does not describe a valid chain.
	ErrCorrupt = errors.New("alloc: corrupt block chain")

	// ErrReserve indicates the arena region could not be reserved.
	ErrReserve = errors.New("alloc: cannot reserve region")
)
