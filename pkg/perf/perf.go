// Package perf provides a fixed set of named latency counters with scoped
// measurement, and a no-op variant for builds that want instrumentation
// compiled out of the hot path.
package perf

import (
	"fmt"
	"io"

	"github.com/openmeg/gomeg/pkg/hwclock"
)

// Monitor is the instrumentation strategy. Exactly one implementation is
// chosen when the program is wired together: Registry records real timings,
// Nop records nothing and never touches the clock.
type Monitor interface {
	// Span starts a scoped measurement on counter i and returns the stop
	// function closing it. Intended use is `defer mon.Span(i)()` so the
	// measurement is recorded on every exit path, exactly once.
	Span(i int) func()
	// Len returns the number of counters.
	Len() int
	// At returns a snapshot of counter i.
	At(i int) Counter
	// Report writes one line per counter that has recorded at least one
	// measurement. Counters with no samples are omitted.
	Report(w io.Writer)
}

// Counter is a point-in-time snapshot of one named accumulator.
type Counter struct {
	Label       string
	TotalMicros uint64
	Count       uint32
}

// Avg returns the mean duration in microseconds. The second return is false
// when no measurements have been recorded; callers must not divide themselves.
func (c Counter) Avg() (uint64, bool) {
	if c.Count == 0 {
		return 0, false
	}
	return c.TotalMicros / uint64(c.Count), true
}

var (
	_ Monitor = (*Registry)(nil)
	_ Monitor = Nop{}
)

// Registry is the recording Monitor. The counter set is fixed at construction;
// indices are stable for the life of the process and counters only ever grow.
//
// Like the clock it reads, a Registry is single-writer: spans must be opened
// and closed from one logical context.
type Registry struct {
	clock    *hwclock.Clock
	counters []Counter
}

// NewRegistry creates a Registry with one counter per label, in order.
func NewRegistry(clock *hwclock.Clock, labels ...string) *Registry {
	r := &Registry{
		clock:    clock,
		counters: make([]Counter, len(labels)),
	}
	for i, label := range labels {
		r.counters[i].Label = label
	}
	return r
}

// Span records the clock at entry; the returned stop function adds the
// elapsed time to counter i and bumps its sample count. Calling stop more
// than once records nothing further.
func (r *Registry) Span(i int) func() {
	start := r.clock.Now()
	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		c := &r.counters[i]
		c.TotalMicros += r.clock.Now() - start
		c.Count++
	}
}

// Len returns the number of counters.
func (r *Registry) Len() int { return len(r.counters) }

// At returns a snapshot of counter i.
func (r *Registry) At(i int) Counter { return r.counters[i] }

// Report writes `label: <avg> us, <freq> Hz` for every counter with at least
// one sample. The frequency is 1e6/avg, or 0 when the average rounds down to
// zero microseconds.
func (r *Registry) Report(w io.Writer) {
	for i := range r.counters {
		c := r.counters[i]
		avg, ok := c.Avg()
		if !ok {
			continue
		}
		var hz uint64
		if avg > 0 {
			hz = 1_000_000 / avg
		}
		fmt.Fprintf(w, "%s: %d us, %d Hz\n", c.Label, avg, hz)
	}
}

// Nop is the disabled Monitor: no clock reads, no accumulation, no report
// output. Everything else behaves identically to a Registry.
type Nop struct{}

var nopStop = func() {}

// Span returns a shared no-op stop function without reading the clock.
func (Nop) Span(int) func() { return nopStop }

// Len returns 0.
func (Nop) Len() int { return 0 }

// At returns an empty snapshot.
func (Nop) At(int) Counter { return Counter{} }

// Report writes nothing.
func (Nop) Report(io.Writer) {}
