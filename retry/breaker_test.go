package retry

import (
	"errors"
	"testing"
	"time"

	"github.com/GeneralBots/botlib/boterr"
)

func newTestBreaker(cfg BreakerConfig) (*CircuitBreaker, *time.Time) {
	b := NewCircuitBreaker(cfg)
	current := time.Unix(0, 0)
	b.now = func() time.Time { return current }
	return b, &current
}

func TestBreakerStatesString(t *testing.T) {
	tests := []struct {
		state BreakerState
		want  string
	}{
		{BreakerClosed, "closed"},
		{BreakerOpen, "open"},
		{BreakerHalfOpen, "half-open"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBreakerOpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{FailureThreshold: 3, Cooldown: time.Minute})
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		b.Record(boom)
		if b.State() != BreakerClosed {
			t.Fatalf("breaker opened after %d failures, threshold is 3", i+1)
		}
	}

	b.Record(boom)
	if b.State() != BreakerOpen {
		t.Fatal("breaker should be open after reaching the threshold")
	}
	if b.Allow() {
		t.Error("open breaker should reject calls")
	}
}

func TestBreakerSuccessResetsFailureCount(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{FailureThreshold: 3, Cooldown: time.Minute})
	boom := errors.New("boom")

	b.Record(boom)
	b.Record(boom)
	b.Record(nil)
	b.Record(boom)
	b.Record(boom)

	if b.State() != BreakerClosed {
		t.Error("success should reset the consecutive failure count")
	}
}

func TestBreakerHalfOpenProbe(t *testing.T) {
	b, clock := newTestBreaker(BreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, Cooldown: time.Minute})
	boom := errors.New("boom")

	b.Record(boom)
	if b.State() != BreakerOpen {
		t.Fatal("breaker should be open")
	}

	*clock = clock.Add(2 * time.Minute)
	if b.State() != BreakerHalfOpen {
		t.Fatal("breaker should be half-open after the cooldown")
	}
	if !b.Allow() {
		t.Fatal("half-open breaker should admit one probe")
	}

	b.Record(nil)
	if b.State() != BreakerClosed {
		t.Error("successful probe should close the breaker")
	}
}

func TestBreakerHalfOpenSingleProbe(t *testing.T) {
	b, clock := newTestBreaker(BreakerConfig{FailureThreshold: 1, SuccessThreshold: 1, Cooldown: time.Minute})
	boom := errors.New("boom")

	b.Record(boom)
	*clock = clock.Add(2 * time.Minute)

	if !b.Allow() {
		t.Fatal("half-open breaker should admit one probe")
	}
	if b.Allow() {
		t.Fatal("second caller should be rejected while the probe is in flight")
	}
	if b.Allow() {
		t.Fatal("further callers should be rejected while the probe is in flight")
	}

	b.Record(nil)
	if b.State() != BreakerClosed {
		t.Error("successful probe should close the breaker")
	}
	if !b.Allow() {
		t.Error("closed breaker should admit calls again")
	}
}

func TestBreakerProbeRejectionThenNextProbe(t *testing.T) {
	b, clock := newTestBreaker(BreakerConfig{FailureThreshold: 1, SuccessThreshold: 2, Cooldown: time.Minute})
	boom := errors.New("boom")

	b.Record(boom)
	*clock = clock.Add(2 * time.Minute)

	if !b.Allow() {
		t.Fatal("first probe should be admitted")
	}
	if b.Allow() {
		t.Fatal("concurrent caller should be rejected")
	}
	b.Record(nil)

	// one success is below the threshold, so the breaker stays half-open
	// and admits exactly one more probe
	if b.State() != BreakerHalfOpen {
		t.Fatal("breaker should stay half-open below the success threshold")
	}
	if !b.Allow() {
		t.Fatal("next probe should be admitted after the first was recorded")
	}
	if b.Allow() {
		t.Fatal("concurrent caller should be rejected during the second probe")
	}
	b.Record(nil)
	if b.State() != BreakerClosed {
		t.Error("breaker should close after reaching the success threshold")
	}
}

func TestBreakerHalfOpenFailureReopens(t *testing.T) {
	b, clock := newTestBreaker(BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})
	boom := errors.New("boom")

	b.Record(boom)
	*clock = clock.Add(2 * time.Minute)
	if !b.Allow() {
		t.Fatal("probe should be admitted")
	}

	b.Record(boom)
	if b.State() != BreakerOpen {
		t.Error("failed probe should re-open the breaker")
	}
	if b.Allow() {
		t.Error("re-opened breaker should reject calls")
	}
}

func TestBreakerExecute(t *testing.T) {
	b, _ := newTestBreaker(BreakerConfig{FailureThreshold: 1, Cooldown: time.Minute})
	boom := errors.New("boom")

	if err := b.Execute(func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("Execute() = %v, want boom", err)
	}

	// the breaker is now open and Execute must fail fast
	called := false
	err := b.Execute(func() error { called = true; return nil })
	if called {
		t.Error("fn should not run while the breaker is open")
	}
	if !errors.Is(err, boterr.ErrDependencyFailure) {
		t.Errorf("Execute() = %v, want dependency failure", err)
	}
}

func TestBreakerDefaults(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{})
	if b.cfg.FailureThreshold != 5 || b.cfg.SuccessThreshold != 1 || b.cfg.Cooldown != 30*time.Second {
		t.Errorf("defaults = %+v, want 5/1/30s", b.cfg)
	}
}
