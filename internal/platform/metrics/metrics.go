// Package metrics exposes Prometheus instrumentation for the ledger engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics counts committed and rejected ledger transactions.
type LedgerMetrics struct {
	committed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewLedgerMetrics creates the ledger counters and registers them with reg.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	m := &LedgerMetrics{
		committed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibank",
			Subsystem: "ledger",
			Name:      "transactions_committed_total",
			Help:      "Total number of committed ledger transactions.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digibank",
			Subsystem: "ledger",
			Name:      "transactions_rejected_total",
			Help:      "Total number of rejected ledger transactions.",
		}, []string{"kind", "reason"}),
	}
	reg.MustRegister(m.committed, m.rejected)
	return m
}

// ObserveCommit records a committed transaction of the given kind.
func (m *LedgerMetrics) ObserveCommit(kind string) {
	if m == nil {
		return
	}
	m.committed.WithLabelValues(kind).Inc()
}

// ObserveRejection records a rejected transaction and the rejection reason.
func (m *LedgerMetrics) ObserveRejection(kind, reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(kind, reason).Inc()
}
