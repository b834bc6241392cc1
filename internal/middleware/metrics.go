package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "society_http_requests_total",
			Help: "Total HTTP requests by method, path pattern and status.",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "society_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path pattern.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// BillsGenerated counts bills produced per calculation method.
	BillsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "society_bills_generated_total",
			Help: "Maintenance bills generated, by calculation method.",
		},
		[]string{"method"},
	)

	// BillGenerationFailures counts failed generation runs.
	BillGenerationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "society_bill_generation_failures_total",
			Help: "Bill generation runs that aborted with an error.",
		},
	)
)

// Metrics records request counts and latencies. Path labels use the mux
// pattern rather than the raw URL to keep cardinality bounded; the pattern
// is read after routing, once ServeMux has matched the request.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rec, r)

		pattern := patternOf(r)
		httpRequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		httpRequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
	})
}

func patternOf(r *http.Request) string {
	if p := r.Pattern; p != "" {
		return p
	}
	return "unmatched"
}
