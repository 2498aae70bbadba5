package retry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/GeneralBots/botlib/boterr"
)

func TestBulkheadExecute(t *testing.T) {
	b := NewBulkhead(2)

	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Execute() = %v, want nil", err)
	}

	boom := errors.New("boom")
	if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
		t.Errorf("Execute() = %v, want boom", err)
	}
}

func TestBulkheadRejectsWhenFull(t *testing.T) {
	b := NewBulkhead(1)

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- b.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	err := b.Execute(func() error { return nil })
	if !errors.Is(err, boterr.ErrDependencyFailure) {
		t.Errorf("Execute() = %v, want dependency failure while full", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Errorf("occupant Execute() = %v, want nil", err)
	}

	// slot is free again
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Errorf("Execute() after release = %v, want nil", err)
	}
}

func TestBulkheadExecuteWait(t *testing.T) {
	b := NewBulkhead(1)

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = b.Execute(func() error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// a waiter with an expired context gives up
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	err := b.ExecuteWait(ctx, func(ctx context.Context) error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("ExecuteWait() = %v, want deadline exceeded", err)
	}

	close(release)

	// with a free slot the waiter runs
	if err := b.ExecuteWait(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Errorf("ExecuteWait() = %v, want nil", err)
	}
}

func TestBulkheadConcurrencyBound(t *testing.T) {
	const max = 4
	b := NewBulkhead(max)

	var mu sync.Mutex
	inFlight, peak := 0, 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = b.ExecuteWait(context.Background(), func(ctx context.Context) error {
				mu.Lock()
				inFlight++
				if inFlight > peak {
					peak = inFlight
				}
				mu.Unlock()

				time.Sleep(time.Millisecond)

				mu.Lock()
				inFlight--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()

	if peak > max {
		t.Errorf("peak concurrency = %d, want <= %d", peak, max)
	}
}

func TestBulkheadNonPositiveMax(t *testing.T) {
	b := NewBulkhead(0)
	if b.max != 1 {
		t.Errorf("max = %d, want 1", b.max)
	}
}
