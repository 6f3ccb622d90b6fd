package relay

import "github.com/prometheus/client_golang/prometheus"

// Metrics collects the relay's Prometheus counters/gauges, wiring
// github.com/prometheus/client_golang (present, unexercised, in the
// teacher's gnssgo_app/go.mod) into runnable instrumentation for every
// endpoint's accepted/dropped frame and queue-depth counts.
type Metrics struct {
	framesReceived *prometheus.CounterVec
	framesDropped  *prometheus.CounterVec
	bytesMoved     *prometheus.CounterVec
	queueDepth     *prometheus.GaugeVec
}

// NewMetrics constructs and registers a Metrics set against reg. Passing a
// nil registry is valid and yields a Metrics whose methods are safe no-ops
// apart from updating the underlying (unregistered) collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		framesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundrelay",
			Name:      "frames_received_total",
			Help:      "Frames or CLTUs received per endpoint.",
		}, []string{"endpoint"}),
		framesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundrelay",
			Name:      "frames_dropped_total",
			Help:      "Frames or CLTUs dropped because their queue was full.",
		}, []string{"endpoint"}),
		bytesMoved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "groundrelay",
			Name:      "bytes_total",
			Help:      "Bytes read or written per endpoint.",
		}, []string{"endpoint", "direction"}),
		queueDepth: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "groundrelay",
			Name:      "queue_depth",
			Help:      "Current occupancy of a hand-off queue.",
		}, []string{"queue"}),
	}
	if reg != nil {
		reg.MustRegister(m.framesReceived, m.framesDropped, m.bytesMoved, m.queueDepth)
	}
	return m
}

func (m *Metrics) received(endpoint string)            { m.framesReceived.WithLabelValues(endpoint).Inc() }
func (m *Metrics) dropped(endpoint string)              { m.framesDropped.WithLabelValues(endpoint).Inc() }
func (m *Metrics) moved(endpoint, direction string, n int) {
	m.bytesMoved.WithLabelValues(endpoint, direction).Add(float64(n))
}
func (m *Metrics) setQueueDepth(queue string, depth int) {
	m.queueDepth.WithLabelValues(queue).Set(float64(depth))
}
