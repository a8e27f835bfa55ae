package gatt

import (
	"errors"
	"fmt"
	"time"

	"github.com/openmeg/gomeg/pkg/wire"
)

// publishRetries bounds how often a rejected attribute write is retried
// before the failure is reported to the caller.
const publishRetries = 3

// Publisher owns the node's single read-only characteristic: one-time setup
// of identity, service and advertising, then repeated overwrites of the
// exposed value. The control loop is the only writer; the stack reads
// concurrently from its own context.
type Publisher struct {
	stack    Stack
	name     string
	interval time.Duration
	attr     Attribute
}

// NewPublisher creates a Publisher over stack advertising under name.
func NewPublisher(stack Stack, name string, interval time.Duration) *Publisher {
	return &Publisher{
		stack:    stack,
		name:     name,
		interval: interval,
	}
}

// Setup brings the stack up, registers the service and its characteristic
// seeded with an all-zero message, and starts advertising. There is no retry:
// a failure here is fatal to the caller. Setup must be called exactly once.
func (p *Publisher) Setup() error {
	if p.attr != nil {
		return errors.New("already set up")
	}

	if err := p.stack.Enable(); err != nil {
		return fmt.Errorf("enable stack: %w", err)
	}

	attr, err := p.stack.AddReadOnlyCharacteristic(ServiceUUID, CharacteristicUUID, wire.Message{}.Bytes())
	if err != nil {
		return fmt.Errorf("add characteristic: %w", err)
	}
	p.attr = attr

	if err := p.stack.Advertise(p.name, ServiceUUID, p.interval); err != nil {
		return fmt.Errorf("start advertising: %w", err)
	}
	return nil
}

// Publish overwrites the exposed attribute with msg. The attribute is not
// push-notified; remote readers only see the new value on their next read.
// Rejected writes are retried up to publishRetries times before the error is
// returned.
func (p *Publisher) Publish(msg wire.Message) error {
	if p.attr == nil {
		return errors.New("not set up")
	}

	payload := msg.Bytes()
	var err error
	for attempt := 0; attempt < publishRetries; attempt++ {
		if err = p.attr.Set(payload); err == nil {
			return nil
		}
	}
	return fmt.Errorf("publish after %d attempts: %w", publishRetries, err)
}
