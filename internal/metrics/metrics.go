// Package metrics exposes prometheus collectors for the recognition loop.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayusman/mudra/internal/gesture"
)

// Metrics holds the loop collectors on a private registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	frames        prometheus.Counter
	handFrames    prometheus.Counter
	activations   *prometheus.CounterVec
	active        *prometheus.GaugeVec
	frameDuration prometheus.Histogram
}

// New registers the collectors, plus Go and process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_frames_total",
			Help: "Total number of frames processed",
		}),
		handFrames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mudra_hand_present_frames_total",
			Help: "Total number of frames with a detected hand",
		}),
		activations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mudra_gesture_activations_total",
				Help: "Total number of debounced gesture activations",
			},
			[]string{"symbol"},
		),
		active: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "mudra_gesture_active",
				Help: "Whether a gesture is currently debounced on (1) or off (0)",
			},
			[]string{"symbol"},
		),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mudra_frame_duration_seconds",
			Help:    "Time to detect, classify and render one frame",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10), // 1ms to ~0.5s
		}),
	}

	m.registry.MustRegister(
		m.frames,
		m.handFrames,
		m.activations,
		m.active,
		m.frameDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	for _, s := range gesture.Symbols() {
		m.active.WithLabelValues(s.String()).Set(0)
	}

	return m
}

// ObserveFrame records one processed frame.
func (m *Metrics) ObserveFrame(handPresent bool, took time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	if handPresent {
		m.handFrames.Inc()
	}
	m.frameDuration.Observe(took.Seconds())
}

// ObserveTransition records a gesture turning on or off.
func (m *Metrics) ObserveTransition(t gesture.Transition) {
	if m == nil {
		return
	}
	label := t.Symbol.String()
	if t.Active {
		m.activations.WithLabelValues(label).Inc()
		m.active.WithLabelValues(label).Set(1)
		return
	}
	m.active.WithLabelValues(label).Set(0)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
