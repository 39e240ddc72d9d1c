package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quill_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quill_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quill_posts_created_total",
			Help: "Total number of posts created",
		},
	)

	SignupsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "quill_signups_total",
			Help: "Total number of accounts registered",
		},
	)
)
