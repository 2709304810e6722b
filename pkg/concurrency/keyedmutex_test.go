package concurrency

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_MutualExclusionPerKey(t *testing.T) {
	km := NewKeyedMutex()
	const goroutines = 50

	var counter int
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			release, err := km.Acquire(context.Background(), "C-101")
			if err != nil {
				errs <- err
				return
			}
			defer release()
			// Unsynchronized increment; the race detector flags any
			// overlap in the critical section.
			counter++
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, goroutines, counter)
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	km := NewKeyedMutex()

	releaseA, err := km.Acquire(context.Background(), "C-101")
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	releaseB, err := km.Acquire(ctx, "L-201")
	require.NoError(t, err, "a held lock on another room must not block this one")
	releaseB()

	require.Equal(t, 2, km.Len())
}

func TestKeyedMutex_AcquireTimesOut(t *testing.T) {
	km := NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "C-101")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = km.Acquire(ctx, "C-101")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestKeyedMutex_TryAcquire(t *testing.T) {
	km := NewKeyedMutex()

	release, ok := km.TryAcquire("C-101")
	require.True(t, ok)

	_, ok = km.TryAcquire("C-101")
	require.False(t, ok)

	release()
	release2, ok := km.TryAcquire("C-101")
	require.True(t, ok)
	release2()
}

func TestKeyedMutex_ReleaseIsIdempotent(t *testing.T) {
	km := NewKeyedMutex()

	release, err := km.Acquire(context.Background(), "C-101")
	require.NoError(t, err)
	release()
	release() // second call must be a no-op, not an unlock of someone else

	release2, ok := km.TryAcquire("C-101")
	require.True(t, ok)
	release2()
}
