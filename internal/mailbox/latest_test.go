package mailbox

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLatest_NewestWins(t *testing.T) {
	box := NewLatest[int]()

	require.False(t, box.Put(1))
	require.True(t, box.Put(2))
	require.True(t, box.Put(3))
	require.Equal(t, uint64(2), box.Dropped())

	v, ok := box.TryTake()
	require.True(t, ok)
	require.Equal(t, 3, v)

	_, ok = box.TryTake()
	require.False(t, ok)
}

func TestLatest_TakeBlocksUntilPut(t *testing.T) {
	box := NewLatest[string]()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		time.Sleep(10 * time.Millisecond)
		box.Put("frame")
	}()

	v, ok := box.Take(ctx)
	require.True(t, ok)
	require.Equal(t, "frame", v)
}

func TestLatest_TakeCancelled(t *testing.T) {
	box := NewLatest[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := box.Take(ctx)
	require.False(t, ok)
}

func TestLatest_ConcurrentPutNeverBlocks(t *testing.T) {
	box := NewLatest[int]()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				box.Put(base + i)
			}
		}(g * 1000)
	}
	wg.Wait()

	_, ok := box.TryTake()
	require.True(t, ok)
	_, ok = box.TryTake()
	require.False(t, ok)
	require.Equal(t, uint64(3999), box.Dropped())
}
