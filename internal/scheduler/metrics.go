package scheduler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Attempts      *prometheus.CounterVec
	CycleDuration prometheus.Histogram
}

// NewMetrics registers the scheduler metrics on reg. Tests pass a
// fresh registry so repeated construction never collides.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Attempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "shroud_dispatch_attempts_total",
			Help: "Total dispatch attempts by outcome",
		}, []string{"status"}),
		CycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "shroud_cycle_duration_seconds",
			Help:    "Time taken for one scheduler cycle",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
