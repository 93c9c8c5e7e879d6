package metrics

import (
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type OffchainMetrics struct {
	Cycles          metrics.Counter
	DurationSeconds metrics.Histogram
}

func (m *OffchainMetrics) AddCycle(result string) {
	m.Cycles.With(OffchainResult, result).Add(1)
}

func (m *OffchainMetrics) ObserveDurationSeconds(begin time.Time) {
	m.DurationSeconds.Observe(time.Since(begin).Seconds())
}

func PromOffchainMetrics() *OffchainMetrics {
	return &OffchainMetrics{
		Cycles: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: OffchainSubsystem,
			Name:      "cycles_total",
			Help:      "Number of reconciliation cycles by result.",
		}, []string{OffchainResult}),
		DurationSeconds: prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: Namespace,
			Subsystem: OffchainSubsystem,
			Name:      "duration_seconds",
			Help:      "Time spent in one reconciliation cycle.",
		}, []string{}),
	}
}

func NopOffchainMetrics() *OffchainMetrics {
	return &OffchainMetrics{
		Cycles:          discard.NewCounter(),
		DurationSeconds: discard.NewHistogram(),
	}
}
