// Package metrics exposes Prometheus collectors for the league API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "leagueapi"

var registry = prometheus.NewRegistry()

var (
	httpRequests = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status.",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	httpRequestDuration = promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	authEvents = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_events_total",
			Help:      "Signups, logins and rejections by outcome.",
		},
		[]string{"event"},
	)

	tokensPurged = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_tokens_purged_total",
		Help:      "Expired API tokens removed by the cleanup job.",
	})

	emailsSent = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "emails_sent_total",
			Help:      "Outbound emails by result.",
		},
		[]string{"result"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Registry returns the registry backing /metrics.
func Registry() *prometheus.Registry {
	return registry
}

// Handler serves the registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func RecordAuthEvent(event string) {
	authEvents.WithLabelValues(event).Inc()
}

func RecordTokensPurged(n int64) {
	if n > 0 {
		tokensPurged.Add(float64(n))
	}
}

func RecordEmail(err error) {
	if err != nil {
		emailsSent.WithLabelValues("error").Inc()
		return
	}
	emailsSent.WithLabelValues("sent").Inc()
}

// Instrument wraps next with request counters labelled by endpoint, which
// should be the route pattern rather than the raw path.
func Instrument(endpoint string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		httpRequests.WithLabelValues(endpoint, r.Method, strconv.Itoa(wrapped.status)).Inc()
		httpRequestDuration.WithLabelValues(endpoint, r.Method).Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
