package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeDeadline verifies N+ = N0 + offset and that shifting N0 by a
// delta shifts N+ by exactly that delta.
func TestComputeDeadline(t *testing.T) {
	n0 := time.Date(2026, 8, 25, 9, 0, 0, 0, testLoc)

	deadline := ComputeDeadline(&n0, 120*time.Hour)
	require.NotNil(t, deadline)
	assert.Equal(t, n0.Add(120*time.Hour), *deadline)

	delta := 7*time.Hour + 13*time.Minute
	shifted := n0.Add(delta)
	shiftedDeadline := ComputeDeadline(&shifted, 120*time.Hour)
	require.NotNil(t, shiftedDeadline)
	assert.Equal(t, delta, shiftedDeadline.Sub(*deadline))

	assert.Nil(t, ComputeDeadline(nil, 120*time.Hour))
}

// TestComputeAging verifies the signed aging and the sentinel fallback.
func TestComputeAging(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, testLoc)

	t.Run("Overdue", func(t *testing.T) {
		deadline := now.Add(-28 * time.Hour)
		assert.Equal(t, 28*time.Hour, ComputeAging(now, &deadline))
	})

	t.Run("NotYetDue", func(t *testing.T) {
		deadline := now.Add(36 * time.Hour)
		assert.Equal(t, -36*time.Hour, ComputeAging(now, &deadline))
	})

	t.Run("SentinelForUndefinedDeadline", func(t *testing.T) {
		assert.Equal(t, 9999*time.Hour, ComputeAging(now, nil))
	})
}
