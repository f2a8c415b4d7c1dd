package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "splitbase_http_requests_total",
			Help: "Total number of HTTP requests by method, pattern, and status.",
		},
		[]string{"method", "pattern", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "splitbase_http_request_duration_seconds",
			Help:    "HTTP request latency by method and pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "pattern"},
	)
)

// Metrics records a counter and latency histogram per request. Labels use
// the matched route pattern, not the raw path, to keep cardinality bounded.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		pattern := r.Pattern
		if pattern == "" {
			pattern = "unmatched"
		}
		requestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
	})
}
