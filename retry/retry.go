package retry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/url"
	"os"
	"syscall"
	"time"
)

// JitterStrategy selects how delays are randomized.
type JitterStrategy int

const (
	// JitterNone disables jitter.
	JitterNone JitterStrategy = iota
	// JitterEqual draws a uniform delay within the backoff window.
	JitterEqual
	// JitterDecorrelated spreads delays around the backoff value to avoid
	// synchronized retry storms.
	JitterDecorrelated
)

// Config defines retry behavior.
type Config struct {
	// MaxAttempts is the total number of attempts including the first.
	MaxAttempts int
	// InitialDelay is the delay before the second attempt.
	InitialDelay time.Duration
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
	// MaxElapsedTime bounds the total time spent, 0 means unbounded.
	MaxElapsedTime time.Duration
	// Multiplier is the exponential backoff factor, at least 1.
	Multiplier float64
	// Jitter selects the randomization strategy.
	Jitter JitterStrategy
	// OnRetry, when set, is called before each wait for observability.
	OnRetry func(attempt int, err error, nextDelay time.Duration)
	// now and after are test seams.
	now   func() time.Time
	after func(d time.Duration) <-chan time.Time
}

// DefaultConfig returns the standard retry configuration: three attempts,
// 100ms initial delay, doubling up to 30s, decorrelated jitter.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		Jitter:       JitterDecorrelated,
	}
}

func (c *Config) normalize() error {
	if c.MaxAttempts <= 0 {
		return errors.New("retry: MaxAttempts must be positive")
	}
	if c.InitialDelay <= 0 {
		return errors.New("retry: InitialDelay must be positive")
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = 30 * time.Second
	}
	if c.InitialDelay > c.MaxDelay {
		return errors.New("retry: InitialDelay cannot exceed MaxDelay")
	}
	if c.Multiplier == 0 {
		c.Multiplier = 2.0
	}
	if c.Multiplier < 1.0 {
		return errors.New("retry: Multiplier must be >= 1.0")
	}
	if c.MaxElapsedTime < 0 {
		return errors.New("retry: MaxElapsedTime cannot be negative")
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.after == nil {
		c.after = time.After
	}
	return nil
}

// Func is an operation that can be retried.
type Func func(ctx context.Context) error

// IsRetryable decides whether an error is worth another attempt.
type IsRetryable func(err error) bool

// ExceededError is returned when attempts or the time budget run out. The
// last attempt's error is available through Unwrap.
type ExceededError struct {
	LastError     error
	Attempts      int
	TotalDuration time.Duration
	Reason        string
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("retry: %s after %s (%d attempts): %v",
		e.Reason, e.TotalDuration, e.Attempts, e.LastError)
}

func (e *ExceededError) Unwrap() error {
	return e.LastError
}

// DefaultRetryable reports whether an error looks transient: timeouts,
// connection resets, temporary DNS failures, unexpected EOFs. Context
// cancellation is never retried.
func DefaultRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		var dnsErr *net.DNSError
		if errors.As(urlErr.Err, &dnsErr) && dnsErr.IsTemporary {
			return true
		}
		var syscallErr *os.SyscallError
		if errors.As(urlErr.Err, &syscallErr) {
			switch syscallErr.Err {
			case syscall.ECONNRESET, syscall.ECONNREFUSED, syscall.ECONNABORTED,
				syscall.ENETDOWN, syscall.ENETUNREACH, syscall.EPIPE,
				syscall.EHOSTUNREACH, syscall.ETIMEDOUT:
				return true
			}
		}
	}
	return false
}

// Do runs fn with retries per config, using DefaultRetryable to decide
// whether to continue after a failure.
func Do(ctx context.Context, config Config, fn Func) error {
	return DoWithRetryable(ctx, config, fn, DefaultRetryable)
}

// DoWithRetryable runs fn with retries per config and a custom
// retryability check. Non-retryable errors are returned as-is; exhausted
// budgets yield an *ExceededError wrapping the last failure.
func DoWithRetryable(ctx context.Context, config Config, fn Func, isRetryable IsRetryable) error {
	cfg := config
	if err := cfg.normalize(); err != nil {
		return err
	}

	var lastErr error
	start := cfg.now()
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == cfg.MaxAttempts {
			break
		}
		if !isRetryable(lastErr) {
			return lastErr
		}

		delay := cfg.jittered(cfg.backoff(attempt))

		if cfg.MaxElapsedTime > 0 {
			elapsed := cfg.now().Sub(start)
			if elapsed+delay > cfg.MaxElapsedTime {
				return &ExceededError{
					LastError:     lastErr,
					Attempts:      attempt,
					TotalDuration: elapsed,
					Reason:        "max elapsed time exceeded",
				}
			}
		}
		if deadline, ok := ctx.Deadline(); ok {
			if remaining := time.Until(deadline); delay > remaining {
				delay = remaining
			}
		}
		if cfg.OnRetry != nil {
			cfg.OnRetry(attempt, lastErr, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-cfg.after(delay):
		}
	}

	return &ExceededError{
		LastError:     lastErr,
		Attempts:      cfg.MaxAttempts,
		TotalDuration: cfg.now().Sub(start),
		Reason:        "max attempts exceeded",
	}
}

// Retry runs fn with the default configuration.
func Retry(ctx context.Context, fn Func) error {
	return Do(ctx, DefaultConfig(), fn)
}

// WithAttempts runs fn with the default configuration and a custom
// attempt count.
func WithAttempts(ctx context.Context, maxAttempts int, fn Func) error {
	cfg := DefaultConfig()
	cfg.MaxAttempts = maxAttempts
	return Do(ctx, cfg, fn)
}

// backoff returns the exponential delay before the attempt+1-th try.
func (c Config) backoff(attempt int) time.Duration {
	delay := c.InitialDelay
	for i := 1; i < attempt; i++ {
		if delay > time.Duration(float64(c.MaxDelay)/c.Multiplier) {
			return c.MaxDelay
		}
		delay = time.Duration(float64(delay) * c.Multiplier)
	}
	if delay > c.MaxDelay {
		return c.MaxDelay
	}
	return delay
}

// jittered randomizes the delay per the configured strategy.
func (c Config) jittered(delay time.Duration) time.Duration {
	switch c.Jitter {
	case JitterEqual:
		return clamp(time.Duration(rand.Int63n(int64(delay))+1), c.InitialDelay, c.MaxDelay)
	case JitterDecorrelated:
		span := delay - delay/2
		return clamp(delay/2+time.Duration(rand.Int63n(int64(span)+1)), c.InitialDelay, c.MaxDelay)
	default:
		return delay
	}
}

func clamp(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
