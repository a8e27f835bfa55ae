package perf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeg/gomeg/pkg/hwclock"
)

// stepClock returns a clock whose source advances by step microseconds on
// every read, so each Span measures exactly one step.
func stepClock(step uint32) *hwclock.Clock {
	var raw uint32
	return hwclock.New(func() uint32 {
		r := raw
		raw += step
		return r
	})
}

func TestRegistry_FixedCounterSet(t *testing.T) {
	r := NewRegistry(stepClock(1), "alpha", "beta", "gamma")

	require.Equal(t, 3, r.Len())
	assert.Equal(t, "alpha", r.At(0).Label)
	assert.Equal(t, "beta", r.At(1).Label)
	assert.Equal(t, "gamma", r.At(2).Label)
	for i := 0; i < r.Len(); i++ {
		assert.Zero(t, r.At(i).Count)
		assert.Zero(t, r.At(i).TotalMicros)
	}
}

func TestRegistry_SpanAccumulates(t *testing.T) {
	r := NewRegistry(stepClock(10), "work")

	for i := 0; i < 5; i++ {
		stop := r.Span(0)
		stop()
	}

	c := r.At(0)
	assert.Equal(t, uint32(5), c.Count)
	assert.Equal(t, uint64(50), c.TotalMicros)

	avg, ok := c.Avg()
	require.True(t, ok)
	assert.Equal(t, uint64(10), avg)
}

func TestRegistry_SpanFiresOnEveryExitPath(t *testing.T) {
	r := NewRegistry(stepClock(10), "work")

	timed := func(fail bool) (err error) {
		defer r.Span(0)()
		if fail {
			return assert.AnError
		}
		return nil
	}

	require.NoError(t, timed(false))
	require.Error(t, timed(true))

	assert.Equal(t, uint32(2), r.At(0).Count, "span must record on error exits too")
}

func TestRegistry_SpanStopIsIdempotent(t *testing.T) {
	r := NewRegistry(stepClock(10), "work")

	stop := r.Span(0)
	stop()
	stop()
	stop()

	assert.Equal(t, uint32(1), r.At(0).Count)
	assert.Equal(t, uint64(10), r.At(0).TotalMicros)
}

func TestCounter_AvgIntegerDivision(t *testing.T) {
	c := Counter{Label: "x", TotalMicros: 10, Count: 3}
	avg, ok := c.Avg()
	require.True(t, ok)
	assert.Equal(t, uint64(3), avg)
}

func TestCounter_AvgNoSamples(t *testing.T) {
	_, ok := Counter{Label: "x"}.Avg()
	assert.False(t, ok)
}

func TestRegistry_Report(t *testing.T) {
	r := NewRegistry(stepClock(100), "fast", "idle", "slow")

	r.Span(0)()
	r.Span(0)()
	// counter 1 never measured
	r.Span(2)()

	var buf bytes.Buffer
	r.Report(&buf)

	out := buf.String()
	assert.Contains(t, out, "fast: 100 us, 10000 Hz\n")
	assert.Contains(t, out, "slow: 100 us, 10000 Hz\n")
	assert.NotContains(t, out, "idle", "zero-sample counters are omitted")
}

func TestRegistry_ReportZeroAverage(t *testing.T) {
	// Stop immediately on a clock that never advances: avg is 0 us, and the
	// frequency divide must be guarded.
	r := NewRegistry(stepClock(0), "instant")
	r.Span(0)()

	var buf bytes.Buffer
	r.Report(&buf)
	assert.Equal(t, "instant: 0 us, 0 Hz\n", buf.String())
}

func TestNop_RecordsNothing(t *testing.T) {
	var mon Monitor = Nop{}

	stop := mon.Span(0)
	stop()

	assert.Zero(t, mon.Len())
	assert.Zero(t, mon.At(0).Count)

	var buf bytes.Buffer
	mon.Report(&buf)
	assert.Empty(t, buf.String())
}
