// Package wire defines the attribute payload exchanged with remote readers.
//
// The layout is frozen: exactly 6 bytes, three little-endian 16-bit readings
// in channel order, no header, no checksum, no version tag. Deployed clients
// parse it byte for byte, so any change here breaks them.
package wire

import (
	"encoding/binary"
	"fmt"

	"github.com/openmeg/gomeg/pkg/measure"
)

// Size is the exact length in bytes of an encoded Message.
const Size = 6

// Message carries the latest reading of each channel.
type Message struct {
	Channel1 uint16
	Channel2 uint16
	Channel3 uint16
}

// Encode packs three measurements into a Message in declared channel order.
// Timestamps are discarded: the wire format carries no time information.
func Encode(m1, m2, m3 measure.Measurement) Message {
	return Message{
		Channel1: m1.Value,
		Channel2: m2.Value,
		Channel3: m3.Value,
	}
}

// Bytes returns the 6-byte little-endian encoding of m.
func (m Message) Bytes() []byte {
	buf := make([]byte, Size)
	binary.LittleEndian.PutUint16(buf[0:2], m.Channel1)
	binary.LittleEndian.PutUint16(buf[2:4], m.Channel2)
	binary.LittleEndian.PutUint16(buf[4:6], m.Channel3)
	return buf
}

// Decode is the exact inverse of Bytes for any 6-byte input.
func Decode(data []byte) (Message, error) {
	if len(data) != Size {
		return Message{}, fmt.Errorf("message must be %d bytes, got %d", Size, len(data))
	}
	return Message{
		Channel1: binary.LittleEndian.Uint16(data[0:2]),
		Channel2: binary.LittleEndian.Uint16(data[2:4]),
		Channel3: binary.LittleEndian.Uint16(data[4:6]),
	}, nil
}
