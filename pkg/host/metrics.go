package host

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robotalks/uartled/pkg/l0/ledcmd"
)

// Frame results recorded by Metrics.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Metrics exposes parser and LED state counters.
type Metrics struct {
	Registry *prometheus.Registry

	frames   *prometheus.CounterVec
	ledOn    *prometheus.GaugeVec
	commands *prometheus.CounterVec
}

// NewMetrics creates Metrics with its own registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uartled_frames_total",
			Help: "Frames received by source and parse result.",
		}, []string{"source", "result"}),
		ledOn: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "uartled_led_on",
			Help: "1 if the LED is on.",
		}, []string{"led"}),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "uartled_commands_total",
			Help: "Network commands handled by type.",
		}, []string{"type"}),
	}
	m.Registry.MustRegister(
		m.frames,
		m.ledOn,
		m.commands,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	for led := ledcmd.Led1; led <= ledcmd.Led4; led++ {
		m.ledOn.WithLabelValues(led.String()).Set(0)
	}
	return m
}

// Frame counts a frame.
func (m *Metrics) Frame(source, result string) {
	m.frames.WithLabelValues(source, result).Inc()
}

// Led records the state of a LED.
func (m *Metrics) Led(led ledcmd.Led, state ledcmd.LedState) {
	var v float64
	if state.IsOn() {
		v = 1
	}
	m.ledOn.WithLabelValues(led.String()).Set(v)
}

// Command counts a network command.
func (m *Metrics) Command(typeName string) {
	m.commands.WithLabelValues(typeName).Inc()
}

// Handler serves the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
