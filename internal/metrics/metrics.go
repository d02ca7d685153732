// Package metrics holds the prometheus collectors for ledger operations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	Registry *prometheus.Registry

	Sales          *prometheus.CounterVec
	UnitsSold      *prometheus.CounterVec
	Transfers      *prometheus.CounterVec
	Rejected       *prometheus.CounterVec
	SyncFailures   prometheus.Counter
	ReportsSent    *prometheus.CounterVec
	LedgerClosings *prometheus.GaugeVec
}

// New builds the collectors on a private registry. Go and process collectors
// are included when withRuntime is set.
func New(withRuntime bool) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Sales: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "sales_total",
			Help:      "Sales recorded, by pool.",
		}, []string{"pool"}),
		UnitsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "units_sold_total",
			Help:      "Units sold, by pool.",
		}, []string{"pool"}),
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "transfers_total",
			Help:      "Transfers executed, by source and destination pool.",
		}, []string{"from", "to"}),
		Rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "rejected_operations_total",
			Help:      "Operations rejected by the ledger, by operation and reason.",
		}, []string{"operation", "reason"}),
		SyncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "sync_failures_total",
			Help:      "Mutations applied in memory but not persisted.",
		}),
		ReportsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ledger",
			Name:      "reports_total",
			Help:      "Daily report deliveries, by result.",
		}, []string{"result"}),
		LedgerClosings: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "ledger",
			Name:      "closing_units",
			Help:      "Current closing stock, by pool.",
		}, []string{"pool"}),
	}
	m.Registry.MustRegister(m.Sales, m.UnitsSold, m.Transfers, m.Rejected, m.SyncFailures, m.ReportsSent, m.LedgerClosings)
	if withRuntime {
		m.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return m
}
