// =============================================================================
// Purchase Order Generator - Metrics
// =============================================================================
//
// Prometheus collectors shared by the generator run and the read API.
//
// COLLECTORS:
//   pogen_records_generated_total             - records built by any run
//   pogen_http_request_duration_seconds{...}  - read API latency by route, method
//
// =============================================================================

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pogen"

// Metrics groups the application collectors.
type Metrics struct {
	RecordsGenerated prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RecordsGenerated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_generated_total",
			Help:      "Number of purchase order records generated.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time spent answering read API requests.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "method"}),
	}

	reg.MustRegister(m.RecordsGenerated, m.RequestDuration)
	return m
}

// ObserveRequest records the duration of a request that started at start.
func (m *Metrics) ObserveRequest(route, method string, start time.Time) {
	m.RequestDuration.With(prometheus.Labels{"route": route, "method": method}).Observe(time.Since(start).Seconds())
}
