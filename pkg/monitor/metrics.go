package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openmeg/gomeg/pkg/measure"
)

// Metrics re-exposes the device's debug stream as prometheus metrics.
type Metrics struct {
	channelReading    *prometheus.GaugeVec
	channelMillivolts *prometheus.GaugeVec
	deviceUptime      prometheus.Gauge
	counterAvg        *prometheus.GaugeVec
	counterHz         *prometheus.GaugeVec
	linesTotal        *prometheus.CounterVec
}

// NewMetrics creates and registers the metric set on reg under the given
// namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		channelReading: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_reading",
			Help:      "Latest raw converter reading per channel.",
		}, []string{"channel"}),
		channelMillivolts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "channel_millivolts",
			Help:      "Latest reading per channel converted to millivolts.",
		}, []string{"channel"}),
		deviceUptime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "device_uptime_micros",
			Help:      "Device monotonic clock at the latest reading, in microseconds.",
		}),
		counterAvg: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "counter_avg_micros",
			Help:      "Average latency per device performance counter, in microseconds.",
		}, []string{"counter"}),
		counterHz: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "counter_frequency_hz",
			Help:      "Derived frequency per device performance counter.",
		}, []string{"counter"}),
		linesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lines_total",
			Help:      "Debug stream lines consumed, by kind.",
		}, []string{"kind"}),
	}

	reg.MustRegister(m.channelReading, m.channelMillivolts, m.deviceUptime, m.counterAvg, m.counterHz, m.linesTotal)
	return m
}

var channelLabels = [3]string{"1", "2", "3"}

func (m *Metrics) observeData(d DataLine) {
	m.deviceUptime.Set(float64(d.Micros))
	for i, label := range channelLabels {
		reading := measure.Measurement{Value: d.Channels[i], OK: true}
		m.channelReading.WithLabelValues(label).Set(float64(reading.Value))
		m.channelMillivolts.WithLabelValues(label).Set(float64(reading.Millivolts(measure.VRefMillivolts)))
	}
	m.linesTotal.WithLabelValues("data").Inc()
}

func (m *Metrics) observeCounter(c CounterLine) {
	m.counterAvg.WithLabelValues(c.Label).Set(float64(c.AvgMicros))
	m.counterHz.WithLabelValues(c.Label).Set(float64(c.Hz))
	m.linesTotal.WithLabelValues("counter").Inc()
}

func (m *Metrics) observeIgnored() {
	m.linesTotal.WithLabelValues("ignored").Inc()
}
