package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhurnal_wall_requests_total",
		Help: "Total number of HTTP requests to the wall service",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zhurnal_wall_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	SourceFetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zhurnal_source_fetches_total",
		Help: "Total number of journal document fetches by outcome",
	}, []string{"outcome"})

	JournalsRendered = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zhurnal_wall_journals_rendered",
		Help:    "Number of journal tiles rendered per page",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
	})
)
