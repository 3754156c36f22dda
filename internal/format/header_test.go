package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Word values from the classic boundary-tag layout: a 24-byte block.
func TestHeaderWords(t *testing.T) {
	tests := []struct {
		name string
		h    Header
		word uint32
	}{
		{"allocated, prev allocated", Header{Size: 24, Allocated: true, PrevAllocated: true}, 27},
		{"allocated, prev free", Header{Size: 24, Allocated: true}, 25},
		{"free, prev allocated", Header{Size: 24, PrevAllocated: true}, 26},
		{"free, prev free", Header{Size: 24}, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.word, EncodeHeader(tt.h))
			assert.Equal(t, tt.h, DecodeHeader(tt.word))
		})
	}
}

func TestSentinel(t *testing.T) {
	h := DecodeHeader(SentinelWord)
	assert.True(t, h.IsSentinel())
	assert.Equal(t, SentinelWord, EncodeHeader(Sentinel))

	// A size-0 word with the prev bit set is not the marker.
	assert.False(t, DecodeHeader(3).IsSentinel())
	assert.False(t, Header{Size: 8, Allocated: true}.IsSentinel())
}

func TestHeaderValidate(t *testing.T) {
	require.NoError(t, Header{Size: 8}.Validate())
	require.NoError(t, Header{Size: 4088, Allocated: true}.Validate())
	assert.ErrorIs(t, Header{Size: 0}.Validate(), ErrBadSize)
	assert.ErrorIs(t, Header{Size: 4}.Validate(), ErrBadSize)
	assert.ErrorIs(t, Header{Size: 20}.Validate(), ErrBadSize)
}

func TestReadWriteWords(t *testing.T) {
	b := make([]byte, 32)

	h := Header{Size: 24, PrevAllocated: true}
	require.NoError(t, WriteHeader(b, 4, h))
	require.NoError(t, WriteFooter(b, FooterOffset(4, 24), 24))
	require.NoError(t, WriteSentinel(b, 28))

	got, err := ReadHeader(b, 4)
	require.NoError(t, err)
	assert.Equal(t, h, got)

	size, err := ReadFooter(b, 24)
	require.NoError(t, err)
	assert.Equal(t, 24, size)

	end, err := ReadHeader(b, 28)
	require.NoError(t, err)
	assert.True(t, end.IsSentinel())

	_, err = ReadHeader(b, 29)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorIs(t, WriteFooter(b, -4, 8), ErrTruncated)
}

func TestHeaderString(t *testing.T) {
	assert.Equal(t, "size=16 status=used prev=Free", Header{Size: 16, Allocated: true}.String())
	assert.Equal(t, "sentinel", Sentinel.String())
}
