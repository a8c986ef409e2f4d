// Package metrics exposes Prometheus instrumentation for the ScoreLive API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scorelive"

// Metrics holds every collector the service updates. All of them are
// registered on the registry passed to New, never the global default.
type Metrics struct {
	gatherer prometheus.Gatherer

	matchesCreated prometheus.Counter
	goalsRecorded  prometheus.Counter
	tokensIssued   prometheus.Counter
	authFailures   *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg *prometheus.Registry) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		gatherer: reg,
		matchesCreated: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Matches registered.",
		}),
		goalsRecorded: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "goals_recorded_total",
			Help:      "Goal events appended across all matches.",
		}),
		tokensIssued: auto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Bearer credentials issued.",
		}),
		authFailures: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected credentials by reason.",
		}, []string{"reason"}),
		httpRequests: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpRequestDuration: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

// MatchCreated counts a registered match.
func (m *Metrics) MatchCreated() { m.matchesCreated.Inc() }

// GoalRecorded counts an appended goal.
func (m *Metrics) GoalRecorded() { m.goalsRecorded.Inc() }

// TokenIssued counts an issued credential.
func (m *Metrics) TokenIssued() { m.tokensIssued.Inc() }

// AuthFailed counts a rejected credential under reason.
func (m *Metrics) AuthFailed(reason string) { m.authFailures.WithLabelValues(reason).Inc() }

// ObserveRequest records one finished HTTP request. route should be the
// router pattern, not the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
