package concurrency

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiter_RejectsBeyondCapacity(t *testing.T) {
	l := NewLimiter(5)

	for i := 0; i < 5; i++ {
		require.True(t, l.TryEnter(), "slot %d should be granted", i)
	}

	// The sixth attempt must be turned away immediately.
	require.False(t, l.TryEnter())

	l.Exit()
	require.True(t, l.TryEnter())
}

func TestLimiter_SlotReturnsOnExit(t *testing.T) {
	l := NewLimiter(1)

	require.True(t, l.TryEnter())
	require.False(t, l.TryEnter())
	l.Exit()
	require.True(t, l.TryEnter())
	l.Exit()
}

func TestLimiter_EnterBlocksUntilContextEnds(t *testing.T) {
	l := NewLimiter(1)
	require.True(t, l.TryEnter())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, l.Enter(ctx), context.DeadlineExceeded)

	l.Exit()
	require.NoError(t, l.Enter(context.Background()))
	l.Exit()
}

func TestLimiter_Capacity(t *testing.T) {
	require.EqualValues(t, 5, NewLimiter(5).Capacity())
}
