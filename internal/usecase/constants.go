package usecase

import "time"

const (
	// DefaultSessionTicks is the countdown length after login or a mutation.
	DefaultSessionTicks = 300

	// DefaultTick is the duration of one countdown tick.
	DefaultTick = time.Second

	// DefaultLoanDelay is the simulated loan processing latency.
	DefaultLoanDelay = 3 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
