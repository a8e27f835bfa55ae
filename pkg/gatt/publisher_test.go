package gatt

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openmeg/gomeg/pkg/wire"
)

func newReadyPublisher(t *testing.T) (*Publisher, *MockStack) {
	t.Helper()
	stack := NewMockStack()
	p := NewPublisher(stack, DeviceName, AdvertisingInterval)
	require.NoError(t, p.Setup())
	return p, stack
}

func TestPublisher_Setup(t *testing.T) {
	_, stack := newReadyPublisher(t)

	advertising, name := stack.Advertising()
	assert.True(t, advertising)
	assert.Equal(t, DeviceName, name)

	attr := stack.Attribute()
	require.NotNil(t, attr)
	assert.Equal(t, make([]byte, wire.Size), attr.Get(), "attribute starts as an all-zero message")
}

func TestPublisher_SetupOnce(t *testing.T) {
	p, _ := newReadyPublisher(t)
	assert.Error(t, p.Setup())
}

func TestPublisher_SetupFailures(t *testing.T) {
	tests := []struct {
		name   string
		inject func(*MockStack)
	}{
		{name: "enable fails", inject: func(s *MockStack) { s.EnableErr = errors.New("no radio") }},
		{name: "add fails", inject: func(s *MockStack) { s.AddErr = errors.New("table full") }},
		{name: "advertise fails", inject: func(s *MockStack) { s.AdvertiseErr = errors.New("busy") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := NewMockStack()
			tt.inject(stack)
			p := NewPublisher(stack, DeviceName, AdvertisingInterval)
			assert.Error(t, p.Setup())
		})
	}
}

func TestPublisher_Publish(t *testing.T) {
	p, stack := newReadyPublisher(t)

	msg := wire.Message{Channel1: 111, Channel2: 222, Channel3: 333}
	require.NoError(t, p.Publish(msg))

	got, err := wire.Decode(stack.Attribute().Get())
	require.NoError(t, err)
	assert.Equal(t, msg, got)
}

func TestPublisher_PublishBeforeSetup(t *testing.T) {
	p := NewPublisher(NewMockStack(), DeviceName, AdvertisingInterval)
	assert.Error(t, p.Publish(wire.Message{}))
}

func TestPublisher_PublishRetriesRejectedWrites(t *testing.T) {
	p, stack := newReadyPublisher(t)
	attr := stack.Attribute()

	attr.FailNext(2)
	require.NoError(t, p.Publish(wire.Message{Channel1: 1}), "two rejections are retried away")

	attr.FailNext(3)
	err := p.Publish(wire.Message{Channel1: 2})
	require.Error(t, err, "three rejections exhaust the retry budget")

	got, decodeErr := wire.Decode(attr.Get())
	require.NoError(t, decodeErr)
	assert.Equal(t, uint16(1), got.Channel1, "failed publish leaves the previous value intact")
}

func TestPublisher_AtomicAgainstConcurrentReads(t *testing.T) {
	p, stack := newReadyPublisher(t)
	attr := stack.Attribute()

	before := wire.Message{Channel1: 1, Channel2: 2, Channel3: 3}
	after := wire.Message{Channel1: 4, Channel2: 5, Channel3: 6}
	require.NoError(t, p.Publish(before))

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
			}
			got, err := wire.Decode(attr.Get())
			if err != nil {
				t.Errorf("reader observed short value: %v", err)
				return
			}
			if got != before && got != after {
				t.Errorf("reader observed torn value %+v", got)
				return
			}
		}
	}()

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			require.NoError(t, p.Publish(after))
		} else {
			require.NoError(t, p.Publish(before))
		}
	}
	close(done)
	wg.Wait()
}
