package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts the work the janitor performs.
type Metrics struct {
	Runs      *prometheus.CounterVec
	Reminders prometheus.Counter
	Deletions prometheus.Counter
	Failures  prometheus.Counter
}

// NewMetrics registers the janitor metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Runs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "janitarr_runs_total",
			Help: "Reconciliation runs by kind, trigger and outcome.",
		}, []string{"kind", "trigger", "status"}),
		Reminders: factory.NewCounter(prometheus.CounterOpts{
			Name: "janitarr_reminders_sent_total",
			Help: "Retention reminders sent to requesters.",
		}),
		Deletions: factory.NewCounter(prometheus.CounterOpts{
			Name: "janitarr_media_deleted_total",
			Help: "Media items deleted after their retention window.",
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "janitarr_item_failures_total",
			Help: "Per-item failures during reconciliation runs.",
		}),
	}
}
