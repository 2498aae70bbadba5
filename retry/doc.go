// Package retry provides the resilience primitives shared by botlib
// consumers: retry with exponential backoff and jitter, a circuit breaker
// and a bulkhead. botlib itself never retries on a consumer's behalf;
// these are tools for the consumer's own policy.
//
// Retrying an operation:
//
//	err := retry.Retry(ctx, func(ctx context.Context) error {
//	    return callDependency(ctx)
//	})
//
// Tuning:
//
//	cfg := retry.DefaultConfig()
//	cfg.MaxAttempts = 5
//	cfg.MaxElapsedTime = time.Minute
//	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
//	    log.Warn("retrying", "attempt", attempt, "delay", delay, "error", err)
//	}
//	err := retry.Do(ctx, cfg, fn)
//
// Protecting a dependency:
//
//	breaker := retry.NewCircuitBreaker(retry.DefaultBreakerConfig())
//	err := breaker.Execute(func() error { return callDependency(ctx) })
//
// For HTTP calls, prefer the httpx client, which is status-code aware and
// honors Retry-After headers.
package retry
