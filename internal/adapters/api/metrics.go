package api

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mess_client_requests_total",
		Help: "Outbound API requests by method, endpoint, and response status.",
	}, []string{"method", "endpoint", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mess_client_request_duration_seconds",
		Help:    "Outbound API request latency by endpoint.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	unauthorizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mess_client_unauthorized_total",
		Help: "Responses that triggered the global 401 interceptor.",
	})
)

// endpointLabel collapses numeric path segments to :id so metric
// cardinality stays bounded per endpoint rather than per resource.
func endpointLabel(path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		if seg != "" && isDigits(seg) {
			segments[i] = ":id"
		}
	}
	return strings.Join(segments, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
