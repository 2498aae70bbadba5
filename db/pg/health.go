package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/GeneralBots/botlib/boterr"
	"github.com/GeneralBots/botlib/retry"
)

// WaitOptions tunes WaitForDB.
type WaitOptions struct {
	// MaxAttempts bounds the number of connection attempts; 0 retries
	// until the context expires.
	MaxAttempts int
	// InitialInterval is the delay after the first failed attempt.
	InitialInterval time.Duration
	// MaxInterval caps the exponential growth between attempts.
	MaxInterval time.Duration
	// PingTimeout bounds each individual attempt.
	PingTimeout time.Duration
}

// DefaultWaitOptions returns the standard startup wait: up to 10 attempts
// with exponential backoff from 1s to 30s.
func DefaultWaitOptions() WaitOptions {
	return WaitOptions{
		MaxAttempts:     10,
		InitialInterval: 1 * time.Second,
		MaxInterval:     30 * time.Second,
		PingTimeout:     5 * time.Second,
	}
}

// WaitForDB blocks until the database accepts connections or the attempt
// and context budgets run out. Typical use is application startup when
// the database container may still be booting.
func WaitForDB(ctx context.Context, dsn string, opts WaitOptions) error {
	attempts := opts.MaxAttempts
	if attempts <= 0 {
		// Effectively unbounded; the context deadline terminates the loop.
		attempts = int(^uint(0) >> 1)
	}
	cfg := retry.Config{
		MaxAttempts:  attempts,
		InitialDelay: opts.InitialInterval,
		MaxDelay:     opts.MaxInterval,
		Multiplier:   2.0,
		Jitter:       retry.JitterEqual,
	}
	err := retry.DoWithRetryable(ctx, cfg,
		func(ctx context.Context) error {
			return ping(ctx, dsn, opts.PingTimeout)
		},
		func(error) bool { return true },
	)
	return boterr.Wrap(err, "waiting for database")
}

// HealthCheck performs a single connectivity check against the DSN.
func HealthCheck(ctx context.Context, dsn string) error {
	return ping(ctx, dsn, 5*time.Second)
}

// HealthCheckPool verifies that an existing pool serves queries.
func HealthCheckPool(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return boterr.Database("pool is nil")
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return WrapErr("ping", err)
	}
	var result int
	if err := pool.QueryRow(ctx, "SELECT 1").Scan(&result); err != nil {
		return WrapErr("query", err)
	}
	if result != 1 {
		return boterr.Database("unexpected result from SELECT 1")
	}
	return nil
}

// ping connects, pings and disconnects within the timeout.
func ping(ctx context.Context, dsn string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return WrapErr("connect", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return WrapErr("ping", err)
	}
	return nil
}

// Stats is a driver-neutral snapshot of pool statistics.
type Stats struct {
	MaxConns     int32
	OpenConns    int32
	InUse        int32
	Idle         int32
	WaitCount    int64
	WaitDuration time.Duration
}

// PoolStats snapshots the pool's statistics.
func PoolStats(pool *pgxpool.Pool) Stats {
	if pool == nil {
		return Stats{}
	}
	s := pool.Stat()
	return Stats{
		MaxConns:     s.MaxConns(),
		OpenConns:    s.TotalConns(),
		InUse:        s.AcquiredConns(),
		Idle:         s.IdleConns(),
		WaitCount:    s.EmptyAcquireCount(),
		WaitDuration: s.AcquireDuration(),
	}
}
