// Package region reserves the single zero-filled, read-write, process-private
// byte region that backs a heap arena.
package region

import (
	"errors"
	"fmt"
)

// ErrBadLength indicates a non-positive reservation request.
var ErrBadLength = errors.New("region: length must be positive")

// ReserveFunc matches Reserve. Heaps accept one so tests can substitute
// ordinary Go memory for the operating system mapping.
type ReserveFunc func(length int) ([]byte, func() error, error)

func checkLength(length int) error {
	if length <= 0 {
		return fmt.Errorf("%w: %d", ErrBadLength, length)
	}
	return nil
}

// Heap reserves length bytes from the Go heap. The result behaves like an
// anonymous mapping (zeroed, writable, private); release is a no-op.
func Heap(length int) ([]byte, func() error, error) {
	if err := checkLength(length); err != nil {
		return nil, nil, err
	}
	return make([]byte, length), func() error { return nil }, nil
}
