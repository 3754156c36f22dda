package alloc

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcraney2/HeapAllocator/heap/verify"
)

func TestLocked_ConcurrentAllocFree(t *testing.T) {
	l := NewLocked(newTestHeap(t, 64*1024))

	const workers = 8
	const rounds = 200

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				ref, data, err := l.Alloc(8 + (w*13+i)%120)
				if err != nil {
					errs <- err
					return
				}
				for j := range data {
					data[j] = byte(w)
				}
				for j := range data {
					if data[j] != byte(w) {
						errs <- fmt.Errorf("worker %d: payload of %s clobbered", w, ref)
						return
					}
				}
				if err := l.Free(ref); err != nil {
					errs <- err
					return
				}
			}
		}(w)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	st := l.Stats()
	assert.Equal(t, workers*rounds, st.AllocCalls)
	assert.Equal(t, workers*rounds, st.FreeCalls)

	u, err := l.Usage()
	require.NoError(t, err)
	assert.Equal(t, 1, u.Blocks)
	assert.Zero(t, u.UsedBytes)

	require.NoError(t, l.Do(func(h *Heap) error {
		return verify.AllInvariants(h.Bytes())
	}))
}
