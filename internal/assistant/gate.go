package assistant

import "sync/atomic"

// Gate is the busy flag: at most one outstanding call at a time.
type Gate struct {
	busy atomic.Bool
}

// TryAcquire sets the flag and reports whether it was free.
func (g *Gate) TryAcquire() bool {
	return g.busy.CompareAndSwap(false, true)
}

// Release clears the flag.
func (g *Gate) Release() {
	g.busy.Store(false)
}

// Busy reports whether a call is in flight.
func (g *Gate) Busy() bool {
	return g.busy.Load()
}
