package limits

import (
	"sync"

	"github.com/GeneralBots/botlib/boterr"
)

// UsageTracker counts concurrent usage of a resource per key (user id,
// tenant id) against a ceiling. Safe for concurrent use.
type UsageTracker struct {
	mu     sync.Mutex
	limit  int
	counts map[string]int
}

// NewUsageTracker creates a tracker allowing up to limit concurrent
// acquisitions per key.
func NewUsageTracker(limit int) *UsageTracker {
	return &UsageTracker{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// Acquire reserves one slot for the key. It fails with a conflict error
// when the key is already at its limit; a successful Acquire must be paired
// with Release.
func (t *UsageTracker) Acquire(key string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts[key] >= t.limit {
		return boterr.Wrapf(boterr.ErrConflict, "limit of %d reached for %q", t.limit, key)
	}
	t.counts[key]++
	return nil
}

// Release frees one slot for the key. Releasing below zero is a no-op.
func (t *UsageTracker) Release(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.counts[key] <= 1 {
		delete(t.counts, key)
		return
	}
	t.counts[key]--
}

// InUse returns the current count for the key.
func (t *UsageTracker) InUse(key string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[key]
}
