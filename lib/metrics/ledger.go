package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type LedgerMetrics struct {
	Height metrics.Gauge

	Transactions metrics.Counter

	Polls          metrics.Counter
	Votes          metrics.Counter
	FinalizedPolls metrics.Counter
}

func (m *LedgerMetrics) SetHeight(height uint64) {
	m.Height.Set(float64(height))
}

func (m *LedgerMetrics) AddTransaction(failed bool) {
	status := LedgerSuccess
	if failed {
		status = LedgerFailed
	}
	m.Transactions.With(LedgerStatus, status).Add(1)
}

func PromLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "height",
			Help:      "Height of the latest committed block.",
		}, []string{}),
		Transactions: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "transactions_total",
			Help:      "Number of executed transactions.",
		}, []string{LedgerStatus}),
		Polls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "polls_total",
			Help:      "Number of created polls.",
		}, []string{}),
		Votes: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "votes_total",
			Help:      "Number of accepted ballots.",
		}, []string{}),
		FinalizedPolls: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: LedgerSubsystem,
			Name:      "finalized_polls_total",
			Help:      "Number of finalized polls.",
		}, []string{}),
	}
}

func NopLedgerMetrics() *LedgerMetrics {
	return &LedgerMetrics{
		Height:         discard.NewGauge(),
		Transactions:   discard.NewCounter(),
		Polls:          discard.NewCounter(),
		Votes:          discard.NewCounter(),
		FinalizedPolls: discard.NewCounter(),
	}
}
