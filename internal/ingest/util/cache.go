package util

import (
	"sync"
	"time"
)

// FreshnessCell memoizes a single value for a fixed window of wall-clock
// time. Concurrent misses are not coalesced: two callers that miss at once
// will both refill the cell.
type FreshnessCell[T any] struct {
	mu     sync.Mutex
	window time.Duration
	now    func() time.Time

	val    T
	stored time.Time
	set    bool
}

func NewFreshnessCell[T any](window time.Duration, now func() time.Time) *FreshnessCell[T] {
	if now == nil {
		now = time.Now
	}
	return &FreshnessCell[T]{window: window, now: now}
}

// Get returns the cached value while it is younger than the window.
func (c *FreshnessCell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	if !c.set {
		return zero, false
	}
	if c.now().Sub(c.stored) >= c.window {
		return zero, false
	}
	return c.val, true
}

func (c *FreshnessCell[T]) Put(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.val = v
	c.stored = c.now()
	c.set = true
}

func (c *FreshnessCell[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.val = zero
	c.set = false
}
