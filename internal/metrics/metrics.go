package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "escola",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "escola",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "escola",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the auth rate limiter",
	})

	ReportExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "escola",
			Name:      "report_exports_total",
			Help:      "Rendered report documents by format",
		},
		[]string{"format"},
	)
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }
