package webhook_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/flowvault/flowvault/pkg/webhook"
)

func TestCircuitBreaker(t *testing.T) {
	t.Parallel()

	t.Run("opens after the failure threshold", func(t *testing.T) {
		t.Parallel()

		cb := webhook.NewCircuitBreaker(3, 1, time.Hour)
		assert.True(t, cb.Allow())

		cb.RecordFailure()
		cb.RecordFailure()
		assert.Equal(t, webhook.CircuitClosed, cb.State())
		assert.True(t, cb.Allow())

		cb.RecordFailure()
		assert.Equal(t, webhook.CircuitOpen, cb.State())
		assert.False(t, cb.Allow())
	})

	t.Run("success in closed state resets the failure count", func(t *testing.T) {
		t.Parallel()

		cb := webhook.NewCircuitBreaker(2, 1, time.Hour)
		cb.RecordFailure()
		cb.RecordSuccess()
		cb.RecordFailure()
		assert.Equal(t, webhook.CircuitClosed, cb.State())
	})

	t.Run("recovers through half-open", func(t *testing.T) {
		t.Parallel()

		cb := webhook.NewCircuitBreaker(1, 2, 10*time.Millisecond)
		cb.RecordFailure()
		assert.False(t, cb.Allow())

		time.Sleep(20 * time.Millisecond)
		assert.True(t, cb.Allow())
		assert.Equal(t, webhook.CircuitHalfOpen, cb.State())

		cb.RecordSuccess()
		assert.Equal(t, webhook.CircuitHalfOpen, cb.State())
		cb.RecordSuccess()
		assert.Equal(t, webhook.CircuitClosed, cb.State())
	})

	t.Run("failure in half-open reopens", func(t *testing.T) {
		t.Parallel()

		cb := webhook.NewCircuitBreaker(1, 1, 10*time.Millisecond)
		cb.RecordFailure()
		time.Sleep(20 * time.Millisecond)
		assert.True(t, cb.Allow())

		cb.RecordFailure()
		assert.Equal(t, webhook.CircuitOpen, cb.State())
		assert.False(t, cb.Allow())
	})

	t.Run("reset closes the circuit", func(t *testing.T) {
		t.Parallel()

		cb := webhook.NewCircuitBreaker(1, 1, time.Hour)
		cb.RecordFailure()
		assert.False(t, cb.Allow())

		cb.Reset()
		assert.Equal(t, webhook.CircuitClosed, cb.State())
		assert.True(t, cb.Allow())
	})

	t.Run("state string", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "closed", webhook.CircuitClosed.String())
		assert.Equal(t, "open", webhook.CircuitOpen.String())
		assert.Equal(t, "half-open", webhook.CircuitHalfOpen.String())
	})
}
