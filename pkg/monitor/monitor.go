// Package monitor consumes the device's serial debug stream and re-exposes
// its readings and performance counters as prometheus metrics.
package monitor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.bug.st/serial"

	"github.com/openmeg/gomeg/pkg/config"
)

// Monitor tails the device debug stream.
type Monitor struct {
	cfg     *config.Config
	metrics *Metrics
}

// New creates a Monitor registering its metrics on reg.
func New(cfg *config.Config, reg prometheus.Registerer) *Monitor {
	return &Monitor{
		cfg:     cfg,
		metrics: NewMetrics(cfg.Metrics.Namespace, reg),
	}
}

// Run opens the configured serial port and consumes lines until ctx is done
// or the port fails.
func (m *Monitor) Run(ctx context.Context) error {
	mode := &serial.Mode{
		BaudRate: m.cfg.Serial.BaudRate,
	}

	port, err := serial.Open(m.cfg.Serial.Port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", m.cfg.Serial.Port, err)
	}
	defer port.Close()

	// Closing the port unblocks the scanner when the context ends.
	go func() {
		<-ctx.Done()
		port.Close()
	}()

	if err := m.Consume(port); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// Consume reads debug lines from r until EOF, updating the metrics. Split out
// from Run so the stream handling is testable without a serial port.
func (m *Monitor) Consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		m.observe(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading debug stream: %w", err)
	}
	return nil
}

func (m *Monitor) observe(line string) {
	parsed, err := Parse(line)
	if err != nil {
		// Banner and diagnostic lines land here; keep them visible.
		log.Printf("device: %s", line)
		m.metrics.observeIgnored()
		return
	}

	switch v := parsed.(type) {
	case DataLine:
		m.metrics.observeData(v)
	case CounterLine:
		m.metrics.observeCounter(v)
	}
}
