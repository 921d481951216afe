package pipeline

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocator_StartsAtOne(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, int64(1), a.Next())
	assert.Equal(t, int64(2), a.Next())
	assert.Equal(t, int64(2), a.LastIssued())
}

func TestAllocatorFrom_ContinuesAboveSeed(t *testing.T) {
	a := NewAllocatorFrom(250)

	assert.Equal(t, int64(251), a.Next(), "allocation continues above persisted ids")
	assert.Equal(t, int64(252), a.Next())
}

func TestAllocatorFrom_ZeroAndNegativeSeedStartAtOne(t *testing.T) {
	assert.Equal(t, int64(1), NewAllocatorFrom(0).Next())
	assert.Equal(t, int64(1), NewAllocatorFrom(-5).Next())
}

func TestAllocator_ConcurrentUniqueness(t *testing.T) {
	const workers = 8
	const perWorker = 500

	a := NewAllocator()
	results := make(chan int64, workers*perWorker)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				results <- a.Next()
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool)
	var max int64
	for id := range results {
		require.False(t, seen[id], "id %d allocated twice", id)
		seen[id] = true
		if id > max {
			max = id
		}
	}

	// exactly N distinct consecutive integers starting at 1
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), max)
	assert.True(t, seen[1], "allocation starts at 1")
}
