// Package gatt exposes the node's readings to wireless centrals through a
// single read-only characteristic.
package gatt

import "time"

// Identity fixed by the deployed clients: they locate the device by this
// service UUID and read this characteristic.
const (
	ServiceUUID        = "c184fdd9-7a6a-400d-ae35-8158d2efb090"
	CharacteristicUUID = "1f20a61f-e506-488d-bf94-393ca4cdcb28"

	// DeviceName is the advertised local name.
	DeviceName = "gomeg"

	// AdvertisingInterval suits common mobile centrals.
	AdvertisingInterval = 100 * time.Millisecond
)

// Stack is the slice of the wireless stack the publisher needs: enable,
// register one read-only attribute, advertise. The stack services remote
// reads from its own context.
type Stack interface {
	Enable() error
	AddReadOnlyCharacteristic(serviceUUID, charUUID string, initial []byte) (Attribute, error)
	Advertise(name, serviceUUID string, interval time.Duration) error
}

// Attribute is the writable handle to the exposed characteristic value. Set
// must replace the whole value atomically with respect to concurrent reads:
// a remote reader observes either the complete old value or the complete new
// one, never a mix.
type Attribute interface {
	Set(value []byte) error
}

// Ensure both stacks implement Stack.
var (
	_ Stack = (*BLE)(nil)
	_ Stack = (*MockStack)(nil)
)
