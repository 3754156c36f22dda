package format

import "errors"

var (
	// ErrTruncated indicates a word would extend past the arena.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrBadSize indicates a decoded block size that cannot describe a real block.
	ErrBadSize = errors.New("format: invalid block size")
)
