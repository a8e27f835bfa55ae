// Package node drives the sensing pipeline: sample three channels, encode,
// publish, report, sleep, forever.
package node

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/openmeg/gomeg/pkg/gatt"
	"github.com/openmeg/gomeg/pkg/measure"
	"github.com/openmeg/gomeg/pkg/perf"
	"github.com/openmeg/gomeg/pkg/wire"
)

// Counter registry layout. Indices are fixed at construction and significant
// only for report ordering.
const (
	CounterSample = iota
	CounterAllSamples
	CounterPublish
	numCounters
)

// Labels returns the registry labels in index order, for wiring a
// perf.Registry that matches the counter constants above.
func Labels() []string {
	labels := [numCounters]string{
		CounterSample:     "single sample",
		CounterAllSamples: "all samples",
		CounterPublish:    "encode+publish",
	}
	return labels[:]
}

// ErrNotInitialised is returned by Step before a successful Init.
var ErrNotInitialised = errors.New("node not initialised")

type state uint8

const (
	stateInit state = iota
	stateSample
)

// Node is the control loop. Init runs once; Step runs one SAMPLE iteration
// and is exposed so tests can single-step instead of waiting on real time.
// All work happens on the caller's goroutine: Node is the single writer of
// the clock, registry and attribute.
type Node struct {
	mon      perf.Monitor
	sampler  *measure.Sampler
	pub      *gatt.Publisher
	debug    io.Writer
	interval time.Duration
	state    state
}

// New creates a Node. debug receives the per-iteration data line, the
// counter report and any failure diagnostics.
func New(mon perf.Monitor, sampler *measure.Sampler, pub *gatt.Publisher, debug io.Writer, interval time.Duration) *Node {
	return &Node{
		mon:      mon,
		sampler:  sampler,
		pub:      pub,
		debug:    debug,
		interval: interval,
	}
}

// Init performs the one-time bring-up: announce on the debug sink and set up
// the publisher. An error here is fatal; the caller must not proceed to Step.
func (n *Node) Init() error {
	if n.state != stateInit {
		return errors.New("already initialised")
	}

	fmt.Fprintln(n.debug, "gomeg: starting")
	if err := n.pub.Setup(); err != nil {
		return fmt.Errorf("publisher setup: %w", err)
	}

	n.state = stateSample
	return nil
}

// Step runs one iteration: sample channels 1, 2, 3 in order, encode, publish,
// then report the counters. A sampling failure skips the whole iteration so
// a partially fresh message is never published; a publish failure is reported
// after the publisher's own retries. Either way the failure is written to the
// debug sink and the returned error is informational — Run never escalates it.
func (n *Node) Step() error {
	if n.state != stateSample {
		return ErrNotInitialised
	}

	m1, m2, m3, err := n.sampleAll()
	if err != nil {
		fmt.Fprintf(n.debug, "sampling failed, iteration skipped: %v\n", err)
		return err
	}

	if err := n.publish(m1, m2, m3); err != nil {
		fmt.Fprintf(n.debug, "publish failed: %v\n", err)
		return err
	}

	fmt.Fprintf(n.debug, "%d,%d,%d,%d\n", m3.Timestamp, m1.Value, m2.Value, m3.Value)
	n.mon.Report(n.debug)
	return nil
}

// Run steps forever on a fixed cadence. There is no exit: the device runs
// until external reset.
func (n *Node) Run() {
	for {
		_ = n.Step()
		time.Sleep(n.interval)
	}
}

func (n *Node) sampleAll() (m1, m2, m3 measure.Measurement, err error) {
	defer n.mon.Span(CounterAllSamples)()

	if m1, err = n.sampler.Sample(measure.Channel1); err != nil {
		return
	}
	if m2, err = n.sampler.Sample(measure.Channel2); err != nil {
		return
	}
	m3, err = n.sampler.Sample(measure.Channel3)
	return
}

func (n *Node) publish(m1, m2, m3 measure.Measurement) error {
	defer n.mon.Span(CounterPublish)()
	return n.pub.Publish(wire.Encode(m1, m2, m3))
}
