package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "voxlate",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "voxlate",
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Translation pipeline metrics
	translationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "translation",
			Name:      "requests_total",
			Help:      "Total number of translation pipeline runs",
		},
		[]string{"method", "status"},
	)

	translationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "voxlate",
			Subsystem: "translation",
			Name:      "pipeline_duration_seconds",
			Help:      "End-to-end translation pipeline duration in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60, 120},
		},
		[]string{"method"},
	)

	computeStepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "translation",
			Name:      "compute_step_failures_total",
			Help:      "Total number of external compute step failures",
		},
		[]string{"step"},
	)

	lowConfidenceResolutions = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "translation",
			Name:      "low_confidence_resolutions_total",
			Help:      "Target resolutions where the source fell outside the user pair",
		},
	)

	tokensConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "quota",
			Name:      "tokens_consumed_total",
			Help:      "Total tokens committed against user quotas",
		},
		[]string{"tier"},
	)

	quotaRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "quota",
			Name:      "rejections_total",
			Help:      "Requests rejected because a quota window was exhausted",
		},
		[]string{"tier"},
	)

	sessionsArmed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "session",
			Name:      "armed_total",
			Help:      "Voice sessions armed with a dictation language",
		},
	)

	sessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "voxlate",
			Subsystem: "session",
			Name:      "expired_total",
			Help:      "Voice sessions observed past their expiry and collapsed to idle",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		// Get route pattern from chi
		routePattern := chi.RouteContext(r.Context()).RoutePattern()
		if routePattern == "" {
			routePattern = "unknown"
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordTranslation records a completed or failed pipeline run
func RecordTranslation(method, status string, duration time.Duration) {
	translationsTotal.WithLabelValues(method, status).Inc()
	translationDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// RecordComputeFailure records a failed external compute step
func RecordComputeFailure(step string) {
	computeStepFailures.WithLabelValues(step).Inc()
}

// RecordLowConfidenceResolution records a target resolution outside the user pair
func RecordLowConfidenceResolution() {
	lowConfidenceResolutions.Inc()
}

// RecordTokensConsumed records tokens committed against a quota
func RecordTokensConsumed(tier string, tokens int64) {
	tokensConsumed.WithLabelValues(tier).Add(float64(tokens))
}

// RecordQuotaRejection records a request rejected by the quota tracker
func RecordQuotaRejection(tier string) {
	quotaRejections.WithLabelValues(tier).Inc()
}

// RecordSessionArmed records a voice session arming
func RecordSessionArmed() {
	sessionsArmed.Inc()
}

// RecordSessionExpired records a lazily observed session expiry
func RecordSessionExpired() {
	sessionsExpired.Inc()
}
