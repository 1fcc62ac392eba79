package pool

// Stats holds cumulative operation counters for instrumentation and tests.
type Stats struct {
	Allocs       uint64 // successful Alloc calls
	Frees        uint64 // successful Free calls (nil no-ops excluded)
	FailedAllocs uint64 // Alloc calls rejected with ErrExhausted
	FailedFrees  uint64 // Free calls rejected with ErrInvalidFree
	InUse        int    // blocks currently allocated
}

// Stats returns a snapshot of the pool's counters, taken under the lock.
func (p *Pool) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.stats
	if !p.closed {
		s.InUse = p.blockCount - p.freeCount
	}
	return s
}
