//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	SAMPLE_INTERVAL_MS = 100 // Control loop cadence in milliseconds

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)

	// Sensing channels, in publish order
	PIN_CH1 = machine.A0
	PIN_CH2 = machine.A1
	PIN_CH3 = machine.A2
)
