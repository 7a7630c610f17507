package authapi

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts auth outcomes. Nil is a valid receiver everywhere so callers
// that do not register metrics can pass nil.
type Metrics struct {
	signups *prometheus.CounterVec
	logins  *prometheus.CounterVec
	denied  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "auth",
			Name:      "signups_total",
			Help:      "Signup attempts by outcome.",
		}, []string{"outcome"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"outcome"}),
		denied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "jobdeck",
			Subsystem: "auth",
			Name:      "requests_denied_total",
			Help:      "Requests rejected by the session middleware, by reason.",
		}, []string{"reason"}),
	}
	reg.MustRegister(m.signups, m.logins, m.denied)
	return m
}

func (m *Metrics) signup(outcome string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) login(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) deny(reason string) {
	if m == nil {
		return
	}
	m.denied.WithLabelValues(reason).Inc()
}
