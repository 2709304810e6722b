package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAccessGate_SharedHoldersProceedTogether(t *testing.T) {
	g := NewAccessGate()
	const readers = 10

	var mu sync.Mutex
	active, peak := 0, 0

	var wg sync.WaitGroup
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			g.WithShared(func() {
				mu.Lock()
				active++
				if active > peak {
					peak = active
				}
				mu.Unlock()

				time.Sleep(10 * time.Millisecond)

				mu.Lock()
				active--
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	require.Greater(t, peak, 1, "shared holders should overlap")
}

func TestAccessGate_ExclusiveExcludesShared(t *testing.T) {
	g := NewAccessGate()

	var mu sync.Mutex
	inExclusive := true
	sawExclusive := false

	g.AcquireExclusive()

	done := make(chan struct{})
	go func() {
		g.AcquireShared()
		mu.Lock()
		sawExclusive = inExclusive
		mu.Unlock()
		g.ReleaseShared()
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	inExclusive = false
	mu.Unlock()
	g.ReleaseExclusive()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reader never granted after writer released")
	}
	require.False(t, sawExclusive, "reader entered while writer held the gate")
}

// A writer that starts waiting while readers hold the gate must be granted
// before readers that arrive after it.
func TestAccessGate_WaitingWriterBeatsLaterReaders(t *testing.T) {
	g := NewAccessGate()

	var mu sync.Mutex
	var order []string
	record := func(who string) {
		mu.Lock()
		order = append(order, who)
		mu.Unlock()
	}

	g.AcquireShared() // keep the gate busy so the writer has to wait

	writerStarted := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		close(writerStarted)
		g.AcquireExclusive()
		record("writer")
		g.ReleaseExclusive()
		close(writerDone)
	}()

	<-writerStarted
	time.Sleep(20 * time.Millisecond) // let the writer block inside AcquireExclusive

	lateReaderDone := make(chan struct{})
	go func() {
		g.AcquireShared()
		record("late-reader")
		g.ReleaseShared()
		close(lateReaderDone)
	}()

	time.Sleep(20 * time.Millisecond)
	g.ReleaseShared()

	<-writerDone
	<-lateReaderDone

	require.Equal(t, []string{"writer", "late-reader"}, order)
}
