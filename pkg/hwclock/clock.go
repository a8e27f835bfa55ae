// Package hwclock turns a wrapping 32-bit hardware microsecond counter into a
// nondecreasing 64-bit elapsed-time clock.
package hwclock

// Source reads the raw free-running 32-bit microsecond counter. At 1 MHz the
// counter wraps roughly every 71.6 minutes.
type Source func() uint32

// Clock accumulates deltas of a wrapping Source into a 64-bit elapsed-time
// value. Unsigned subtraction of consecutive raw readings yields the true
// delta across at most one wrap; if two or more wraps pass between calls the
// missed time is silently lost, so Now must be called more often than once
// per wrap period.
//
// Not safe for concurrent use: all calls must come from a single logical
// context.
type Clock struct {
	source  Source
	last    uint32
	elapsed uint64
}

// New creates a Clock over source. Elapsed time is measured from this call.
func New(source Source) *Clock {
	return &Clock{
		source: source,
		last:   source(),
	}
}

// Now returns microseconds elapsed since the clock was created. Successive
// calls never go backwards.
func (c *Clock) Now() uint64 {
	raw := c.source()
	c.elapsed += uint64(raw - c.last)
	c.last = raw
	return c.elapsed
}
