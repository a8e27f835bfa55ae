package monitor

import (
	"fmt"
	"strconv"
	"strings"
)

// DataLine is one per-iteration reading line from the device.
// Format: micros,ch1,ch2,ch3
// Example: 1234567890,111,222,333
type DataLine struct {
	Micros   uint64
	Channels [3]uint16
}

// CounterLine is one performance counter report line from the device.
// Format: label: avg us, freq Hz
// Example: single sample: 42 us, 23809 Hz
type CounterLine struct {
	Label     string
	AvgMicros uint64
	Hz        uint64
}

// Parse classifies one debug line. Lines that are neither data nor counter
// reports (startup banner, failure diagnostics) yield an error and are
// counted but otherwise ignored by the monitor.
func Parse(line string) (any, error) {
	if label, rest, ok := strings.Cut(line, ": "); ok {
		return parseCounterLine(label, rest)
	}
	return parseDataLine(line)
}

func parseDataLine(line string) (DataLine, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return DataLine{}, fmt.Errorf("invalid data line: expected 4 comma-separated values, got %d", len(parts))
	}

	micros, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return DataLine{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	d := DataLine{Micros: micros}
	for i, part := range parts[1:] {
		value, err := strconv.ParseUint(part, 10, 16)
		if err != nil {
			return DataLine{}, fmt.Errorf("invalid channel %d reading: %w", i+1, err)
		}
		d.Channels[i] = uint16(value)
	}
	return d, nil
}

func parseCounterLine(label, rest string) (CounterLine, error) {
	avgPart, hzPart, ok := strings.Cut(rest, ", ")
	if !ok {
		return CounterLine{}, fmt.Errorf("invalid counter line: %q", rest)
	}

	avgStr, okAvg := strings.CutSuffix(avgPart, " us")
	hzStr, okHz := strings.CutSuffix(hzPart, " Hz")
	if !okAvg || !okHz {
		return CounterLine{}, fmt.Errorf("invalid counter line units: %q", rest)
	}

	avg, err := strconv.ParseUint(avgStr, 10, 64)
	if err != nil {
		return CounterLine{}, fmt.Errorf("invalid average: %w", err)
	}
	hz, err := strconv.ParseUint(hzStr, 10, 64)
	if err != nil {
		return CounterLine{}, fmt.Errorf("invalid frequency: %w", err)
	}

	return CounterLine{Label: label, AvgMicros: avg, Hz: hz}, nil
}
