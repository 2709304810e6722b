package concurrency

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Limiter is a counting admission gate. TryEnter never blocks: when all slots
// are taken the caller is turned away immediately, signaling back-pressure
// instead of queuing.
type Limiter struct {
	sem      *semaphore.Weighted
	capacity int64
}

func NewLimiter(capacity int64) *Limiter {
	return &Limiter{sem: semaphore.NewWeighted(capacity), capacity: capacity}
}

// TryEnter claims one admission slot, reporting false if none is free.
func (l *Limiter) TryEnter() bool {
	return l.sem.TryAcquire(1)
}

// Exit returns a slot claimed by TryEnter. It must be called on every exit
// path, success or failure.
func (l *Limiter) Exit() {
	l.sem.Release(1)
}

// Enter is the blocking variant, used where queuing is acceptable.
func (l *Limiter) Enter(ctx context.Context) error {
	return l.sem.Acquire(ctx, 1)
}

func (l *Limiter) Capacity() int64 {
	return l.capacity
}
