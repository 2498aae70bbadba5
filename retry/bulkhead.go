package retry

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/GeneralBots/botlib/boterr"
)

// Bulkhead bounds the number of concurrent calls to a dependency so one
// slow collaborator cannot absorb every worker.
type Bulkhead struct {
	max int64
	sem *semaphore.Weighted
}

// NewBulkhead creates a bulkhead admitting up to max concurrent calls.
// Non-positive max defaults to 1.
func NewBulkhead(max int) *Bulkhead {
	if max <= 0 {
		max = 1
	}
	return &Bulkhead{max: int64(max), sem: semaphore.NewWeighted(int64(max))}
}

// Execute runs fn within the concurrency bound. When the bulkhead is full
// it fails immediately with a dependency failure rather than queueing.
func (b *Bulkhead) Execute(fn func() error) error {
	if !b.sem.TryAcquire(1) {
		return boterr.Wrapf(boterr.ErrDependencyFailure, "bulkhead full, max %d concurrent calls", b.max)
	}
	defer b.sem.Release(1)
	return fn()
}

// ExecuteWait runs fn within the concurrency bound, waiting for a slot
// until the context is done.
func (b *Bulkhead) ExecuteWait(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := b.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer b.sem.Release(1)
	return fn(ctx)
}
