package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(WithClock(func() time.Time { return now }))

	for i := 0; i < 59; i++ {
		now = now.Add(16 * time.Millisecond)
		require.False(t, p.Tick(), "tick %d", i)
	}
	now = time.Unix(2, 0)
	require.True(t, p.Tick())

	s := p.Last()
	assert.InDelta(t, 30.0, s.FPS, 1e-9)
	assert.Greater(t, s.HeapMB, 0.0)
	assert.Greater(t, s.SysMB, 0.0)

	now = now.Add(500 * time.Millisecond)
	assert.False(t, p.Tick(), "counters reset after a report")
}

func TestWithIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(WithInterval(0))
	assert.Equal(t, time.Second, p.updateInterval)

	p = NewProfiler(WithInterval(250 * time.Millisecond))
	assert.Equal(t, 250*time.Millisecond, p.updateInterval)
}
