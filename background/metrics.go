package background

import "github.com/prometheus/client_golang/prometheus"

// Outcome classifies how a load attempt ended.
type Outcome string

const (
	OutcomeCommitted  Outcome = "committed"
	OutcomeSuperseded Outcome = "superseded"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeFailed     Outcome = "failed"
)

// Metrics counts coordinator activity. A nil *Metrics records nothing.
type Metrics struct {
	Recomputes   prometheus.Counter
	Redundant    prometheus.Counter
	Started      prometheus.Counter
	Finished     *prometheus.CounterVec
	Placeholders prometheus.Counter
	Retired      prometheus.Counter
}

// NewMetrics builds the counters and registers them with reg when reg is
// non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "recomputes_total",
			Help:      "Selection recomputations drained from the dirty flag.",
		}),
		Redundant: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "redundant_changes_total",
			Help:      "Recomputations whose identity matched the settled background.",
		}),
		Started: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "loads_started_total",
			Help:      "Background loads started.",
		}),
		Finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "loads_finished_total",
			Help:      "Background loads finished, by outcome.",
		}, []string{"outcome"}),
		Placeholders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "placeholders_committed_total",
			Help:      "Empty-identity placeholders committed without a load.",
		}),
		Retired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "roombg",
			Name:      "artifacts_destroyed_total",
			Help:      "Retired backgrounds destroyed after their fade-out.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Recomputes, m.Redundant, m.Started, m.Finished, m.Placeholders, m.Retired)
	}
	return m
}

func (m *Metrics) recompute() {
	if m != nil {
		m.Recomputes.Inc()
	}
}

func (m *Metrics) redundant() {
	if m != nil {
		m.Redundant.Inc()
	}
}

func (m *Metrics) started() {
	if m != nil {
		m.Started.Inc()
	}
}

func (m *Metrics) finished(o Outcome) {
	if m != nil {
		m.Finished.WithLabelValues(string(o)).Inc()
	}
}

func (m *Metrics) placeholder() {
	if m != nil {
		m.Placeholders.Inc()
	}
}

func (m *Metrics) retired() {
	if m != nil {
		m.Retired.Inc()
	}
}
