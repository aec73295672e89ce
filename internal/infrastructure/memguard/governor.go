// Package memguard reports process memory pressure to long-running calculations.
package memguard

import (
	"runtime"
	"sync"
	"time"
)

// minSampleInterval throttles runtime.ReadMemStats, which stops the world.
const minSampleInterval = 50 * time.Millisecond

// HeapGovernor reports exhaustion once the live heap exceeds a limit.
// It is safe for concurrent use.
type HeapGovernor struct {
	limit uint64

	mu        sync.Mutex
	sampledAt time.Time
	exhausted bool
	readHeap  func() uint64
	now       func() time.Time
}

// NewHeapGovernor creates a governor with a limit in megabytes. A limit of zero
// or less never reports exhaustion.
func NewHeapGovernor(limitMB int) *HeapGovernor {
	var limit uint64
	if limitMB > 0 {
		limit = uint64(limitMB) << 20
	}
	return &HeapGovernor{
		limit:    limit,
		readHeap: readHeapAlloc,
		now:      time.Now,
	}
}

// Exhausted reports whether the heap is above the limit. Samples are reused for
// a short interval.
func (g *HeapGovernor) Exhausted() bool {
	if g.limit == 0 {
		return false
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if !g.sampledAt.IsZero() && now.Sub(g.sampledAt) < minSampleInterval {
		return g.exhausted
	}
	g.sampledAt = now
	g.exhausted = g.readHeap() > g.limit
	return g.exhausted
}

// Limit returns the configured limit in bytes.
func (g *HeapGovernor) Limit() uint64 {
	return g.limit
}

func readHeapAlloc() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
