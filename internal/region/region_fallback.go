//go:build !unix

package region

import "os"

// PageSize returns the operating system page size.
func PageSize() int {
	return os.Getpagesize()
}

// Reserve allocates length zeroed bytes when anonymous mappings are not available.
func Reserve(length int) ([]byte, func() error, error) {
	return Heap(length)
}
