package gatt

import (
	"fmt"
	"time"

	"tinygo.org/x/bluetooth"
)

// BLE adapts the tinygo bluetooth stack to the Stack interface. The stack's
// own locking makes characteristic writes atomic with respect to remote
// reads.
type BLE struct {
	adapter *bluetooth.Adapter
}

// NewBLE wraps adapter, normally bluetooth.DefaultAdapter.
func NewBLE(adapter *bluetooth.Adapter) *BLE {
	return &BLE{adapter: adapter}
}

// Enable starts the stack.
func (b *BLE) Enable() error {
	return b.adapter.Enable()
}

// AddReadOnlyCharacteristic registers one service holding one read-only
// characteristic seeded with initial.
func (b *BLE) AddReadOnlyCharacteristic(serviceUUID, charUUID string, initial []byte) (Attribute, error) {
	svc, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return nil, fmt.Errorf("parse service UUID: %w", err)
	}
	chr, err := bluetooth.ParseUUID(charUUID)
	if err != nil {
		return nil, fmt.Errorf("parse characteristic UUID: %w", err)
	}

	attr := &bleAttribute{}
	err = b.adapter.AddService(&bluetooth.Service{
		UUID: svc,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				Handle: &attr.char,
				UUID:   chr,
				Value:  initial,
				Flags:  bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("add service: %w", err)
	}
	return attr, nil
}

// Advertise configures the default advertisement with the device name and
// service UUID and starts it. Scan response carrying the name is handled by
// the stack.
func (b *BLE) Advertise(name, serviceUUID string, interval time.Duration) error {
	svc, err := bluetooth.ParseUUID(serviceUUID)
	if err != nil {
		return fmt.Errorf("parse service UUID: %w", err)
	}

	adv := b.adapter.DefaultAdvertisement()
	err = adv.Configure(bluetooth.AdvertisementOptions{
		LocalName:    name,
		ServiceUUIDs: []bluetooth.UUID{svc},
		Interval:     bluetooth.NewDuration(interval),
	})
	if err != nil {
		return fmt.Errorf("configure advertisement: %w", err)
	}
	return adv.Start()
}

type bleAttribute struct {
	char bluetooth.Characteristic
}

// Set overwrites the characteristic value.
func (a *bleAttribute) Set(value []byte) error {
	_, err := a.char.Write(value)
	return err
}
