package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

type Metrics struct {
	HTTPRequests  *prometheus.CounterVec
	HTTPLatencyMS *prometheus.HistogramVec
	SyncOps       *prometheus.CounterVec
	BackendMS     *prometheus.HistogramVec
	Checkouts     *prometheus.CounterVec
	Subscribers   *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		HTTPLatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
		SyncOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cart",
			Name:      "sync_operations_total",
			Help:      "Cart sync operations by kind and outcome.",
		}, []string{"op", "result"}),
		BackendMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "call_duration_ms",
			Help:      "Backend call latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"op"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "order",
			Name:      "checkout_attempts_total",
			Help:      "Checkout attempts by terminal state.",
		}, []string{"state"}),
		Subscribers: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "stream",
			Name:      "subscribers",
			Help:      "Open subscription streams.",
		}, []string{"stream"}),
		gatherer: reg,
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPLatencyMS, m.SyncOps, m.BackendMS, m.Checkouts, m.Subscribers)
	return m
}

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// nil receivers are allowed so components can run without metrics in tests.

func (m *Metrics) ObserveHTTP(route, status string, started time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, status).Inc()
	m.HTTPLatencyMS.WithLabelValues(route).Observe(float64(time.Since(started).Milliseconds()))
}

func (m *Metrics) ObserveSync(op string, err error) {
	if m == nil {
		return
	}
	m.SyncOps.WithLabelValues(op, result(err)).Inc()
}

func (m *Metrics) ObserveBackend(op string, started time.Time) {
	if m == nil {
		return
	}
	m.BackendMS.WithLabelValues(op).Observe(float64(time.Since(started).Milliseconds()))
}

func (m *Metrics) ObserveCheckout(state string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(state).Inc()
}

func (m *Metrics) TrackSubscriber(stream string) func() {
	if m == nil {
		return func() {}
	}
	g := m.Subscribers.WithLabelValues(stream)
	g.Inc()
	return g.Dec
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
