package observability

import (
	"context"
	"net/http"

	"cluesbot/events"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the bot's Prometheus instruments on a private registry
type Metrics struct {
	registry *prometheus.Registry

	messagesRead     *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	rejections       *prometheus.CounterVec
	scores           *prometheus.HistogramVec
	leaderboardPosts *prometheus.CounterVec
}

// NewMetrics creates and registers all instruments
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		messagesRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "messages_read_total",
			Help:      "Discord messages and interactions read.",
		}, []string{LabelType}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "submissions_total",
			Help:      "Share cards saved or refused by the ledger.",
		}, []string{LabelOutcome}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "submission_rejections_total",
			Help:      "Duplicate share cards by detection point.",
		}, []string{LabelReason}),
		scores: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: MetricNamespace,
			Name:      "submission_total_score",
			Help:      "Total score of accepted share cards.",
			Buckets:   prometheus.LinearBuckets(0, 30, 11),
		}, []string{LabelDifficulty}),
		leaderboardPosts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricNamespace,
			Name:      "leaderboard_posts_total",
			Help:      "Scheduled leaderboards announced.",
		}, []string{LabelPeriod}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.messagesRead,
		m.submissions,
		m.rejections,
		m.scores,
		m.leaderboardPosts,
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordMessageRead counts a message or interaction of messageType
func (m *Metrics) RecordMessageRead(messageType string) {
	m.messagesRead.WithLabelValues(messageType).Inc()
}

// Observe updates counters from a bus event
func (m *Metrics) Observe(event events.Event) {
	switch e := event.(type) {
	case events.SubmissionAcceptedEvent:
		m.submissions.WithLabelValues(OutcomeAccepted).Inc()
		m.scores.WithLabelValues(e.Difficulty).Observe(float64(e.TotalScore))
	case events.SubmissionRejectedEvent:
		m.submissions.WithLabelValues(OutcomeRejected).Inc()
		m.rejections.WithLabelValues(e.Reason).Inc()
	case events.LeaderboardPostedEvent:
		m.leaderboardPosts.WithLabelValues(e.Period).Inc()
	}
}

// Attach subscribes the metrics to every event on bus
func (m *Metrics) Attach(bus *events.Bus) {
	bus.SubscribeAll(func(ctx context.Context, event events.Event) {
		m.Observe(event)
	})
}
