// Package metrics holds the Prometheus instruments of the assessment engine.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "orienta"

type Metrics struct {
	GenerationAttempts  *prometheus.CounterVec
	GenerationRejected  *prometheus.CounterVec
	GenerationFallbacks *prometheus.CounterVec
	GenerationDuration  *prometheus.HistogramVec
	SessionsStarted     *prometheus.CounterVec
	AnswersTotal        *prometheus.CounterVec
	SessionsCompleted   prometheus.Counter
	ResultsTotal        *prometheus.CounterVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates the instruments and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GenerationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_attempts_total",
			Help:      "Generator calls by request kind and outcome",
		}, []string{"kind", "outcome"}),
		GenerationRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_rejected_total",
			Help:      "Generated questions rejected by guard check",
		}, []string{"check"}),
		GenerationFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generation_fallbacks_total",
			Help:      "Static fallbacks served by request kind",
		}, []string{"kind"}),
		GenerationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Generator call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 45},
		}, []string{"kind"}),
		SessionsStarted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Start calls by result (created or resumed)",
		}, []string{"result"}),
		AnswersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Submitted answers by kind (answer, edit, escape, replay)",
		}, []string{"kind"}),
		SessionsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_completed_total",
			Help:      "Interviews that reached the last question",
		}),
		ResultsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_total",
			Help:      "Synthesized result sets by source",
		}, []string{"source"}),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"route", "method", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"route", "method"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.GenerationAttempts, m.GenerationRejected, m.GenerationFallbacks, m.GenerationDuration,
			m.SessionsStarted, m.AnswersTotal, m.SessionsCompleted, m.ResultsTotal,
			m.HTTPRequestsTotal, m.HTTPRequestDuration,
		)
	}

	return m
}

func (m *Metrics) ObserveGeneration(kind, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationAttempts.WithLabelValues(kind, outcome).Inc()
	m.GenerationDuration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *Metrics) Rejected(check string) {
	if m == nil {
		return
	}
	m.GenerationRejected.WithLabelValues(check).Inc()
}

func (m *Metrics) Fallback(kind string) {
	if m == nil {
		return
	}
	m.GenerationFallbacks.WithLabelValues(kind).Inc()
}

func (m *Metrics) SessionStarted(result string) {
	if m == nil {
		return
	}
	m.SessionsStarted.WithLabelValues(result).Inc()
}

func (m *Metrics) Answer(kind string) {
	if m == nil {
		return
	}
	m.AnswersTotal.WithLabelValues(kind).Inc()
}

func (m *Metrics) Completed() {
	if m == nil {
		return
	}
	m.SessionsCompleted.Inc()
}

func (m *Metrics) Results(source string) {
	if m == nil {
		return
	}
	m.ResultsTotal.WithLabelValues(source).Inc()
}

// HTTPMiddleware records Prometheus metrics for each request.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
