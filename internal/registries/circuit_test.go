package registries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCircuitBreaker(t *testing.T) {
	t.Run("starts closed", func(t *testing.T) {
		b := NewCircuitBreaker(0)
		blocked, until := b.Blocked()
		assert.False(t, blocked)
		assert.True(t, until.IsZero())
	})

	t.Run("trip blocks for cooldown", func(t *testing.T) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		now := base
		b := NewCircuitBreaker(time.Hour)
		b.SetClock(func() time.Time { return now })

		until := b.Trip()
		assert.Equal(t, base.Add(time.Hour), until)

		blocked, gotUntil := b.Blocked()
		assert.True(t, blocked)
		assert.Equal(t, until, gotUntil)
	})

	t.Run("self-clears after cooldown", func(t *testing.T) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		now := base
		b := NewCircuitBreaker(time.Hour)
		b.SetClock(func() time.Time { return now })
		b.Trip()

		now = base.Add(59 * time.Minute)
		blocked, _ := b.Blocked()
		assert.True(t, blocked)

		now = base.Add(time.Hour + time.Second)
		blocked, until := b.Blocked()
		assert.False(t, blocked)
		assert.True(t, until.IsZero())
	})

	t.Run("reset clears immediately", func(t *testing.T) {
		b := NewCircuitBreaker(time.Hour)
		b.Trip()
		b.Reset()

		state := b.State()
		assert.False(t, state.Blocked)
		assert.True(t, state.BlockedUntil.IsZero())
	})

	t.Run("zero cooldown uses default", func(t *testing.T) {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		b := NewCircuitBreaker(0)
		b.SetClock(func() time.Time { return base })
		assert.Equal(t, base.Add(DefaultBlockCooldown), b.Trip())
	})
}
