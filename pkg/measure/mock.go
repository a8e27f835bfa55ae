package measure

import (
	"fmt"
	"sync"
)

// MockADC simulates the converter for testing and development. Channel values
// and failures are programmable; reads are counted per channel.
type MockADC struct {
	mu     sync.Mutex
	values map[Channel]uint16
	errs   map[Channel]error
	reads  map[Channel]int
}

// NewMockADC creates a MockADC with all channels reading zero.
func NewMockADC() *MockADC {
	return &MockADC{
		values: make(map[Channel]uint16),
		errs:   make(map[Channel]error),
		reads:  make(map[Channel]int),
	}
}

// Set fixes the value returned for ch and clears any injected error.
func (m *MockADC) Set(ch Channel, value uint16) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[ch] = value
	delete(m.errs, ch)
}

// SetError makes reads of ch fail with err until Set is called again.
func (m *MockADC) SetError(ch Channel, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[ch] = err
}

// Reads returns how many times ch has been read.
func (m *MockADC) Reads(ch Channel) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reads[ch]
}

// Read returns the programmed value or error for ch.
func (m *MockADC) Read(ch Channel) (uint16, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reads[ch]++
	if err, ok := m.errs[ch]; ok {
		return 0, err
	}
	if value, ok := m.values[ch]; ok {
		return value, nil
	}
	if ch < Channel1 || ch > Channel3 {
		return 0, fmt.Errorf("unknown channel %d", ch)
	}
	return 0, nil
}
