package app

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the process-wide prometheus registry plus HTTP server series.
type Metrics struct {
	Registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewMetrics builds a registry with runtime collectors and HTTP server series
// registered.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		Registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by path and status class.",
		}, []string{"path", "class"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "jobdeck",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by path.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
	}
	reg.MustRegister(m.httpRequests, m.httpDuration)
	return m
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// WithHTTPMetrics instruments requests. Paths are recorded as registered route
// patterns only, so cardinality stays bounded.
func (m *Metrics) WithHTTPMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		lrw := &loggingResponseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lrw, r)

		path := routePattern(r)
		m.httpRequests.WithLabelValues(path, statusClass(lrw.status)).Inc()
		m.httpDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	})
}

// routePattern returns the matched ServeMux pattern, or "unmatched" for
// requests that hit no registered route.
func routePattern(r *http.Request) string {
	if p := r.Pattern; p != "" {
		return p
	}
	return "unmatched"
}
