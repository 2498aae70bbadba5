package retry

import (
	"sync"
	"time"

	"github.com/GeneralBots/botlib/boterr"
)

// BreakerState is the state of a CircuitBreaker.
type BreakerState int

const (
	// BreakerClosed lets calls through and counts failures.
	BreakerClosed BreakerState = iota
	// BreakerOpen rejects calls until the cooldown elapses.
	BreakerOpen
	// BreakerHalfOpen lets a probe call through; its outcome decides
	// whether the breaker closes again or re-opens.
	BreakerHalfOpen
)

// String returns the state name.
func (s BreakerState) String() string {
	switch s {
	case BreakerOpen:
		return "open"
	case BreakerHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// BreakerConfig defines circuit breaker behavior.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the breaker.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes
	// that closes it again.
	SuccessThreshold int
	// Cooldown is how long the breaker stays open before probing.
	Cooldown time.Duration
}

// DefaultBreakerConfig returns the standard breaker configuration.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		FailureThreshold: 5,
		SuccessThreshold: 1,
		Cooldown:         30 * time.Second,
	}
}

// CircuitBreaker fails fast once a dependency keeps failing, giving it
// time to recover. Safe for concurrent use.
type CircuitBreaker struct {
	cfg BreakerConfig

	mu        sync.Mutex
	state     BreakerState
	probing   bool
	failures  int
	successes int
	openedAt  time.Time
	now       func() time.Time
}

// NewCircuitBreaker creates a closed breaker with the given configuration.
// Zero thresholds fall back to the defaults.
func NewCircuitBreaker(cfg BreakerConfig) *CircuitBreaker {
	def := DefaultBreakerConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = def.Cooldown
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State returns the current breaker state, accounting for an elapsed
// cooldown.
func (b *CircuitBreaker) State() BreakerState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentState()
}

// Allow reports whether a call may proceed. When the breaker is open and
// its cooldown has elapsed, a single caller is let through as the
// half-open probe.
func (b *CircuitBreaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch b.currentState() {
	case BreakerOpen:
		return false
	case BreakerHalfOpen:
		// One probe at a time: concurrent callers are rejected until the
		// probe's outcome is recorded.
		if b.probing {
			return false
		}
		b.probing = true
		return true
	default:
		return true
	}
}

// Record feeds a call outcome back into the breaker.
func (b *CircuitBreaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err == nil {
		b.onSuccess()
		return
	}
	b.onFailure()
}

// Execute runs fn behind the breaker. A rejected call returns a
// dependency failure without invoking fn.
func (b *CircuitBreaker) Execute(fn func() error) error {
	if !b.Allow() {
		return boterr.Wrap(boterr.ErrDependencyFailure, "circuit breaker open")
	}
	err := fn()
	b.Record(err)
	return err
}

// currentState resolves Open to HalfOpen once the cooldown has elapsed.
// Callers must hold b.mu.
func (b *CircuitBreaker) currentState() BreakerState {
	if b.state == BreakerOpen && b.now().Sub(b.openedAt) >= b.cfg.Cooldown {
		b.state = BreakerHalfOpen
		b.probing = false
		b.successes = 0
	}
	return b.state
}

func (b *CircuitBreaker) onSuccess() {
	switch b.currentState() {
	case BreakerHalfOpen:
		b.probing = false
		b.successes++
		if b.successes >= b.cfg.SuccessThreshold {
			b.state = BreakerClosed
			b.failures = 0
			b.successes = 0
		}
	default:
		b.failures = 0
	}
}

func (b *CircuitBreaker) onFailure() {
	switch b.currentState() {
	case BreakerHalfOpen:
		b.trip()
	default:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.trip()
		}
	}
}

func (b *CircuitBreaker) trip() {
	b.state = BreakerOpen
	b.openedAt = b.now()
	b.probing = false
	b.failures = 0
	b.successes = 0
}
