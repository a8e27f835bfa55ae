package measure

// Channel identifies one analog input channel.
type Channel uint8

// The three sensing channels, in publish order.
const (
	Channel1 Channel = iota + 1
	Channel2
	Channel3
)

// ADC is the analog-to-digital converter the sampler reads from. Readings are
// in the converter's native range (0-4095 for the 12-bit converters used
// here); the sampler accepts whatever the converter returns.
type ADC interface {
	Read(ch Channel) (uint16, error)
}

// Ensure MockADC implements ADC.
var _ ADC = (*MockADC)(nil)
