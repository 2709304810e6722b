package concurrency

import "sync"

// AccessGate is the shared/exclusive discipline over the booking ledger's
// read path: any number of shared holders may proceed together, an exclusive
// holder excludes everyone else.
//
// It wraps sync.RWMutex rather than a hand-rolled condition-variable lock
// because the runtime's implementation is already write-preferring: once a
// writer is waiting, later readers queue behind it, so a steady stream of
// reads cannot starve a writer.
type AccessGate struct {
	mu sync.RWMutex
}

func NewAccessGate() *AccessGate {
	return &AccessGate{}
}

func (g *AccessGate) AcquireShared()    { g.mu.RLock() }
func (g *AccessGate) ReleaseShared()    { g.mu.RUnlock() }
func (g *AccessGate) AcquireExclusive() { g.mu.Lock() }
func (g *AccessGate) ReleaseExclusive() { g.mu.Unlock() }

// WithShared runs fn while holding the gate in shared mode.
func (g *AccessGate) WithShared(fn func()) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	fn()
}

// WithExclusive runs fn while holding the gate exclusively.
func (g *AccessGate) WithExclusive(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn()
}
