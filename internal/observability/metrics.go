package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics collects Prometheus metrics for the application.
type Metrics struct {
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	quotesTotal    *prometheus.CounterVec
	emailsTotal    *prometheus.CounterVec
	feedbackEvents *prometheus.CounterVec
}

// NewMetrics initializes the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cleanedge_http_requests_total",
		Help: "Number of HTTP requests by route and status.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cleanedge_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	quotes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cleanedge_quote_requests_total",
		Help: "Quote submissions by outcome.",
	}, []string{"outcome"})
	emails := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cleanedge_emails_total",
		Help: "Email sends by mode and outcome.",
	}, []string{"mode", "outcome"})
	feedback := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cleanedge_email_feedback_events_total",
		Help: "Bounce and complaint events received from the transport provider.",
	}, []string{"type"})
	registry.MustRegister(requests, duration, quotes, emails, feedback)
	return &Metrics{
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		quotesTotal:     quotes,
		emailsTotal:     emails,
		feedbackEvents:  feedback,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for each HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// CountQuote records one quote submission by outcome ("accepted", "invalid", "failed").
func (m *Metrics) CountQuote(outcome string) {
	if m == nil {
		return
	}
	m.quotesTotal.WithLabelValues(outcome).Inc()
}

// CountEmail records one email send attempt.
func (m *Metrics) CountEmail(mode, outcome string) {
	if m == nil {
		return
	}
	m.emailsTotal.WithLabelValues(mode, outcome).Inc()
}

// CountFeedback records one bounce/complaint event.
func (m *Metrics) CountFeedback(eventType string) {
	if m == nil {
		return
	}
	m.feedbackEvents.WithLabelValues(eventType).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
