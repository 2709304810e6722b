package concurrency

import (
	"context"
	"sync"
)

// KeyedMutex hands out one mutual-exclusion lock per resource key, created
// lazily. Callers for distinct keys never contend; callers for the same key
// are serialized in acquisition order.
//
// A caller must never hold more than one key at a time. The API exposes no
// multi-key acquire, so no lock-ordering hazard exists. If multi-key
// acquisition is ever added, keys must be taken in lexicographic order to
// rule out circular wait.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]chan struct{})}
}

// lockFor looks up or creates the lock channel for key. The registry mutex is
// held only for the lookup, never while waiting on the key itself.
func (k *KeyedMutex) lockFor(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	ch, ok := k.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.locks[key] = ch
	}
	return ch
}

// Acquire blocks until the lock for key is held or ctx ends. On success it
// returns a release function that must be called exactly once.
func (k *KeyedMutex) Acquire(ctx context.Context, key string) (func(), error) {
	ch := k.lockFor(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-ch })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryAcquire takes the lock for key only if it is immediately free.
func (k *KeyedMutex) TryAcquire(key string) (func(), bool) {
	ch := k.lockFor(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-ch })
		}, true
	default:
		return nil, false
	}
}

// Len reports how many keys have a registered lock.
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
