//go:build tinygo

//go:generate tinygo flash -target=xiao-ble

package main

import (
	"errors"
	"machine"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/openmeg/gomeg/pkg/gatt"
	"github.com/openmeg/gomeg/pkg/hwclock"
	"github.com/openmeg/gomeg/pkg/measure"
	"github.com/openmeg/gomeg/pkg/node"
	"github.com/openmeg/gomeg/pkg/perf"
)

func main() {
	// Give the USB serial console a moment to come up before the banner.
	time.Sleep(time.Second)

	machine.InitADC()
	adc := newBoardADC()

	clock := hwclock.New(rawMicros)
	mon := perf.NewRegistry(clock, node.Labels()...)
	sampler := measure.NewSampler(adc, clock, mon, node.CounterSample)

	stack := gatt.NewBLE(bluetooth.DefaultAdapter)
	pub := gatt.NewPublisher(stack, gatt.DeviceName, gatt.AdvertisingInterval)

	n := node.New(mon, sampler, pub, machine.Serial,
		time.Duration(SAMPLE_INTERVAL_MS)*time.Millisecond)

	must("bring up node", n.Init())
	n.Run()
}

// rawMicros truncates the microsecond count since boot to the wrapping 32-bit
// counter hwclock expects.
func rawMicros() uint32 {
	return uint32(time.Now().UnixNano() / int64(time.Microsecond))
}

func must(action string, err error) {
	if err != nil {
		panic("failed to " + action + ": " + err.Error())
	}
}

// boardADC exposes the three sensing pins through the measure.ADC interface.
type boardADC struct {
	channels [3]machine.ADC
}

var _ measure.ADC = (*boardADC)(nil)

func newBoardADC() *boardADC {
	b := &boardADC{
		channels: [3]machine.ADC{
			{Pin: PIN_CH1},
			{Pin: PIN_CH2},
			{Pin: PIN_CH3},
		},
	}

	cfg := machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	}
	for i := range b.channels {
		b.channels[i].Configure(cfg)
	}
	return b
}

func (b *boardADC) Read(ch measure.Channel) (uint16, error) {
	i := int(ch) - 1
	if i < 0 || i >= len(b.channels) {
		return 0, errors.New("unknown channel")
	}
	// Get returns a left-adjusted 16-bit value; shift back to the converter's
	// native 12-bit range.
	return b.channels[i].Get() >> 4, nil
}
