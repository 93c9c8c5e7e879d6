package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

var apiLabels = []string{APIEndpoint, APIMethod, APIStatus}

type APIMetrics struct {
	Requests metrics.Counter
	Problems metrics.Counter
	Duration metrics.Histogram
}

// Observe records one served request; `endpoint` is the route template,
// like "/api/v1/polls/{id}", so the label set stays bounded.
func (m *APIMetrics) Observe(endpoint, method string, status int, elapsed time.Duration) {
	lvs := []string{APIEndpoint, endpoint, APIMethod, method, APIStatus, strconv.Itoa(status)}

	m.Requests.With(lvs...).Add(1)
	if status >= http.StatusBadRequest {
		m.Problems.With(lvs...).Add(1)
	}
	m.Duration.With(lvs...).Observe(elapsed.Seconds())
}

func PromAPIMetrics() *APIMetrics {
	return &APIMetrics{
		Requests: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "requests_total",
			Help:      "Requests served by the poll ledger api.",
		}, apiLabels),
		Problems: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "problems_total",
			Help:      "Requests answered with a problem document.",
		}, apiLabels),
		Duration: prometheus.NewHistogramFrom(stdprometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: APISubsystem,
			Name:      "request_duration_seconds",
			Help:      "Time to serve a request.",
			Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1},
		}, apiLabels),
	}
}

func NopAPIMetrics() *APIMetrics {
	return &APIMetrics{
		Requests: discard.NewCounter(),
		Problems: discard.NewCounter(),
		Duration: discard.NewHistogram(),
	}
}
