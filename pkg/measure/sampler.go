// Package measure reads analog channels and stamps the readings against the
// node's monotonic clock.
package measure

import (
	"fmt"

	"github.com/openmeg/gomeg/pkg/hwclock"
	"github.com/openmeg/gomeg/pkg/perf"
)

// Sampler reads single channels from an ADC, timestamping each reading with
// the monotonic clock. Every read is measured under one perf counter,
// including failed reads.
type Sampler struct {
	adc   ADC
	clock *hwclock.Clock
	mon   perf.Monitor
	span  int
}

// NewSampler creates a Sampler. span is the index of the per-read counter in
// mon's registry.
func NewSampler(adc ADC, clock *hwclock.Clock, mon perf.Monitor, span int) *Sampler {
	return &Sampler{
		adc:   adc,
		clock: clock,
		mon:   mon,
		span:  span,
	}
}

// Sample reads ch and stamps the result. The raw value is accepted as-is; a
// converter error yields a zero Measurement with OK unset.
func (s *Sampler) Sample(ch Channel) (Measurement, error) {
	defer s.mon.Span(s.span)()

	value, err := s.adc.Read(ch)
	if err != nil {
		return Measurement{}, fmt.Errorf("read channel %d: %w", ch, err)
	}

	return Measurement{
		Timestamp: s.clock.Now(),
		Value:     value,
		OK:        true,
	}, nil
}
