package measure

import "github.com/chewxy/math32"

// VRefMillivolts is the converters' reference voltage: a full-scale reading
// is this many millivolts.
const VRefMillivolts float32 = 3300

// Measurement is one timestamped channel reading.
//
// The zero value means "never sampled". OK makes that explicit: a legitimate
// zero-voltage reading taken in the clock's first microsecond would otherwise
// be indistinguishable from the sentinel.
type Measurement struct {
	Timestamp uint64 // microseconds on the node's monotonic clock
	Value     uint16 // raw converter reading, native range
	OK        bool   // true for any measurement produced by a Sampler
}

// Millivolts converts the raw 12-bit reading to millivolts against the given
// reference voltage, rounded to the nearest millivolt.
func (m Measurement) Millivolts(vrefMV float32) float32 {
	return math32.Round(float32(m.Value) * vrefMV / 4095.0)
}
