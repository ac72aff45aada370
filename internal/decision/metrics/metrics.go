package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the decision engine.
type Metrics struct {
	// Decisions made, by final decision value
	Decisions *prometheus.CounterVec

	// Status callbacks that exhausted every retry and need reconciliation
	CallbackFailures prometheus.Counter
}

// New creates a new Metrics instance with all decision engine metrics registered.
func New() *Metrics {
	return &Metrics{
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "loanflow_decisions_total",
			Help: "Total loan decisions made, by decision",
		}, []string{"decision"}),

		CallbackFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "loanflow_status_callback_failures_total",
			Help: "Status callbacks that failed after exhausting all retries",
		}),
	}
}

// IncDecision records one final decision.
func (m *Metrics) IncDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

// IncCallbackFailure records a status callback given up on after retries.
func (m *Metrics) IncCallbackFailure() {
	if m != nil {
		m.CallbackFailures.Inc()
	}
}
