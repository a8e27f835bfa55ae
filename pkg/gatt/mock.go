package gatt

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// MockStack simulates the wireless stack for testing and development. The
// attribute's backing value is guarded by a mutex so concurrent readers
// always observe a whole snapshot, mirroring the real stack's locking.
type MockStack struct {
	mu          sync.Mutex
	enabled     bool
	advertising bool
	name        string
	serviceUUID string
	attr        *MockAttribute

	// Injected failures for the one-time setup path.
	EnableErr    error
	AddErr       error
	AdvertiseErr error
}

// NewMockStack creates a disabled MockStack.
func NewMockStack() *MockStack {
	return &MockStack{}
}

// Enable marks the stack enabled.
func (s *MockStack) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.EnableErr != nil {
		return s.EnableErr
	}
	s.enabled = true
	return nil
}

// AddReadOnlyCharacteristic registers the single attribute.
func (s *MockStack) AddReadOnlyCharacteristic(serviceUUID, charUUID string, initial []byte) (Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AddErr != nil {
		return nil, s.AddErr
	}
	if !s.enabled {
		return nil, errors.New("stack not enabled")
	}
	if s.attr != nil {
		return nil, errors.New("characteristic already registered")
	}
	s.serviceUUID = serviceUUID
	s.attr = &MockAttribute{value: append([]byte(nil), initial...)}
	return s.attr, nil
}

// Advertise records the advertising parameters.
func (s *MockStack) Advertise(name, serviceUUID string, interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.AdvertiseErr != nil {
		return s.AdvertiseErr
	}
	if !s.enabled {
		return errors.New("stack not enabled")
	}
	if serviceUUID != s.serviceUUID {
		return fmt.Errorf("advertised service %s does not match registered service %s", serviceUUID, s.serviceUUID)
	}
	s.name = name
	s.advertising = true
	return nil
}

// Advertising reports whether Advertise succeeded, and the advertised name.
func (s *MockStack) Advertising() (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.advertising, s.name
}

// Attribute returns the registered attribute, or nil before setup.
func (s *MockStack) Attribute() *MockAttribute {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attr
}

// MockAttribute is the in-memory characteristic value.
type MockAttribute struct {
	mu       sync.Mutex
	value    []byte
	sets     int
	failNext int
}

// Set replaces the whole value under the lock.
func (a *MockAttribute) Set(value []byte) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.failNext > 0 {
		a.failNext--
		return errors.New("attribute write rejected")
	}
	a.value = append(a.value[:0], value...)
	a.sets++
	return nil
}

// Get returns a copy of the current value, as a remote read would.
func (a *MockAttribute) Get() []byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]byte(nil), a.value...)
}

// Sets returns how many writes have succeeded.
func (a *MockAttribute) Sets() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sets
}

// FailNext makes the next n Set calls fail.
func (a *MockAttribute) FailNext(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failNext = n
}
