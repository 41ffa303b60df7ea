// SPDX-License-Identifier: MIT

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lintrc_http_requests_total",
		Help: "Total number of HTTP requests by route pattern, method, and status class",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lintrc_http_request_duration_seconds",
		Help:    "HTTP request latency by route pattern",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"route"})
)

// RecordHTTPRequest records one served request. The route must be the
// chi route pattern, never the raw URL path, to keep cardinality bounded.
func RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, method, statusClass(status)).Inc()
	httpRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "unknown"
	}
	return strconv.Itoa(status/100) + "xx"
}
