package registries

import (
	"sync"
	"time"
)

// DefaultBlockCooldown is how long a source stays blocked after a
// bot-defense signature trips its breaker.
const DefaultBlockCooldown = time.Hour

// CircuitState is a snapshot of a source's breaker.
type CircuitState struct {
	Blocked      bool
	BlockedUntil time.Time
}

// CircuitBreaker tracks whether a bot-defended source is currently
// blocking us. A trip marks the source blocked for the cool-down; calls
// during the cool-down short-circuit without any network round-trip. The
// breaker self-clears once the cool-down elapses or a call succeeds.
//
// It is shared by reference across all concurrent callers of one source
// and is safe for concurrent use.
type CircuitBreaker struct {
	mu           sync.Mutex
	cooldown     time.Duration
	blocked      bool
	blockedUntil time.Time

	// now is the clock; overridable in tests.
	now func() time.Time
}

// NewCircuitBreaker creates a breaker with the given cool-down.
// A zero cooldown uses DefaultBlockCooldown.
func NewCircuitBreaker(cooldown time.Duration) *CircuitBreaker {
	if cooldown <= 0 {
		cooldown = DefaultBlockCooldown
	}
	return &CircuitBreaker{
		cooldown: cooldown,
		now:      time.Now,
	}
}

// Blocked reports whether the source is currently blocked, clearing the
// breaker first if the cool-down has elapsed. The returned time is the
// end of the block window and is only meaningful when blocked.
func (b *CircuitBreaker) Blocked() (bool, time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.blocked {
		return false, time.Time{}
	}
	if b.now().After(b.blockedUntil) {
		b.blocked = false
		b.blockedUntil = time.Time{}
		return false, time.Time{}
	}
	return true, b.blockedUntil
}

// Trip marks the source blocked for the cool-down window and returns the
// time at which the block expires.
func (b *CircuitBreaker) Trip() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocked = true
	b.blockedUntil = b.now().Add(b.cooldown)
	return b.blockedUntil
}

// Reset clears the breaker. Called after any successful response.
func (b *CircuitBreaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blocked = false
	b.blockedUntil = time.Time{}
}

// State returns a snapshot of the breaker.
func (b *CircuitBreaker) State() CircuitState {
	blocked, until := b.Blocked()
	return CircuitState{Blocked: blocked, BlockedUntil: until}
}

// SetClock overrides the breaker's clock. Tests use this to advance time
// across the cool-down without sleeping.
func (b *CircuitBreaker) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}
