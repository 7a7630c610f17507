package jobs

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts job endpoint activity. Nil is a valid receiver so handlers
// built without metrics stay cheap.
type Metrics struct {
	postings prometheus.Counter
	filters  prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		postings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "jobs",
			Name:      "postings_created_total",
			Help:      "Job postings created.",
		}),
		filters: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "jobs",
			Name:      "filter_queries_total",
			Help:      "Job filter queries served.",
		}),
	}
	reg.MustRegister(m.postings, m.filters)
	return m
}

func (m *Metrics) created() {
	if m == nil {
		return
	}
	m.postings.Inc()
}

func (m *Metrics) filtered() {
	if m == nil {
		return
	}
	m.filters.Inc()
}
