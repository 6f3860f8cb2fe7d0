// Package api exposes the interview engine over HTTP.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spigell/orienta/internal/metrics"
	"github.com/spigell/orienta/internal/results"
	"github.com/spigell/orienta/internal/session"
)

// OwnerHeader carries the caller identity.
const OwnerHeader = "X-Owner-ID"

// Service is the part of session.Engine the API needs.
type Service interface {
	Start(ctx context.Context, ownerID string) (*session.Response, error)
	SubmitAnswer(ctx context.Context, req session.AnswerRequest) (*session.Response, error)
	State(ctx context.Context, sessionID, ownerID string) (*session.Session, error)
	Finalize(ctx context.Context, sessionID, ownerID string) ([]results.Recommendation, error)
	TotalQuestions() int
}

// Options configure the router.
type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Defaults to prometheus.DefaultGatherer.
	Gatherer        prometheus.Gatherer
	AllowedOrigins  []string
	RateLimitPerMin int
	RequestTimeout  time.Duration
}

// Server holds the HTTP handlers.
type Server struct {
	svc    Service
	logger *zap.Logger
}

// NewRouter builds the HTTP handler with all middlewares and routes.
func NewRouter(svc Service, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 90 * time.Second
	}

	s := &Server{svc: svc, logger: opts.Logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(opts.Logger))
	r.Use(opts.Metrics.HTTPMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", OwnerHeader, "Idempotency-Key"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	r.Route("/v1/sessions", func(sr chi.Router) {
		sr.Use(middleware.Timeout(opts.RequestTimeout))
		if opts.RateLimitPerMin > 0 {
			sr.Use(httprate.Limit(opts.RateLimitPerMin, time.Minute, httprate.WithKeyFuncs(keyByOwner)))
		}
		sr.Post("/", s.startSession)
		sr.Get("/{id}", s.getSession)
		sr.Post("/{id}/answers", s.submitAnswer)
		sr.Post("/{id}/results", s.finalize)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))

	return r
}

// keyByOwner rate limits per respondent, falling back to the client address.
func keyByOwner(r *http.Request) (string, error) {
	if owner := strings.TrimSpace(r.Header.Get(OwnerHeader)); owner != "" {
		return "owner:" + owner, nil
	}
	return httprate.KeyByIP(r)
}

func accessLog(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
