// Package metrics defines Prometheus metrics for price-alert-notifier.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pan"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "Whether the last liveness probe succeeded (1) or failed (0).",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "Whether the last readiness probe succeeded (1) or failed (0).",
	})
)

// Notify request outcomes.
const (
	OutcomeSent          = "sent"
	OutcomeNoSubscribers = "no_subscribers"
	OutcomeUnauthorized  = "unauthorized"
	OutcomeBadRequest    = "bad_request"
	OutcomeError         = "error"
)

// Dispatch metrics.
var (
	NotifyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notify_requests_total",
		Help:      "Total number of notification requests by outcome.",
	}, []string{"outcome"})

	SubscribersPerRequest = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "subscribers_per_request",
		Help:      "Number of resolved recipients per notification request.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10), // 1, 2, 4, ..., 512
	})
)

// Mail send results.
const (
	ResultOK     = "ok"
	ResultFailed = "failed"
)

// Mail metrics.
var (
	MailSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mail_sends_total",
		Help:      "Total number of outbound mail calls by result.",
	}, []string{"result"})

	MailSendDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mail_send_duration_seconds",
		Help:      "Duration of outbound mail calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)
