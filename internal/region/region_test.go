package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageSizePositive(t *testing.T) {
	ps := PageSize()
	assert.Positive(t, ps)
	assert.Zero(t, ps&(ps-1), "page size %d should be a power of two", ps)
}

func TestReserveRejectsBadLength(t *testing.T) {
	ps := PageSize()
	for _, n := range []int{0, -1, -ps} {
		_, _, err := Reserve(n)
		assert.ErrorIs(t, err, ErrBadLength, "length %d", n)
	}
}

func TestHeap(t *testing.T) {
	data, release, err := Heap(64)
	require.NoError(t, err)
	assert.Len(t, data, 64)
	assert.NoError(t, release())

	_, _, err = Heap(0)
	assert.ErrorIs(t, err, ErrBadLength)
}
