// =============================================================================
// Purchase Order Generator - Read API Server
// =============================================================================
//
// This module serves a generated purchase order CSV over HTTP.
//
// ROUTES:
//   GET  /                      welcome + endpoint index
//   GET  /api/orders            paginated, filterable orders
//   GET  /api/orders/{po}       first order with the given PO number
//   GET  /api/statistics        totals and per-column breakdowns
//   GET  /api/vendors           distinct vendors
//   GET  /api/departments       distinct departments
//   POST /api/export            filtered orders, unpaginated
//   GET  /api/download          the CSV file (?archive=zip for a zip)
//   POST /api/generate          regenerate the CSV (?count=N)
//   GET  /metrics               Prometheus exposition
//
// The CSV is re-read on every request. Regeneration takes the write lock so
// readers never observe a half-written file.
//
// =============================================================================

package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/ginjaninja78/po-data-generator/internal/logger"
	"github.com/ginjaninja78/po-data-generator/internal/metrics"
	"github.com/ginjaninja78/po-data-generator/internal/runner"
)

// GenerateFunc regenerates the dataset with count records.
type GenerateFunc func(count int) (runner.Result, error)

// Config holds the server dependencies.
type Config struct {
	// CSVPath is the file served by the API.
	CSVPath string

	// DefaultCount is used by /api/generate when no count is given.
	DefaultCount int

	// MaxCount caps the count accepted by /api/generate. Zero means no cap.
	MaxCount int

	// Generate regenerates the CSV. Nil disables /api/generate.
	Generate GenerateFunc

	// Gatherer is exposed on /metrics. Nil disables the route.
	Gatherer prometheus.Gatherer

	// Metrics records request durations. May be nil.
	Metrics *metrics.Metrics

	// Log receives request and error logs. May be nil.
	Log *logger.Logger
}

// Server answers read API requests.
type Server struct {
	mu      sync.RWMutex
	csvPath string

	defaultCount int
	maxCount     int
	generate     GenerateFunc
	gatherer     prometheus.Gatherer
	metrics      *metrics.Metrics
	log          *logger.Logger
}

// New creates a Server.
func New(cfg Config) *Server {
	return &Server{
		csvPath:      cfg.CSVPath,
		defaultCount: cfg.DefaultCount,
		maxCount:     cfg.MaxCount,
		generate:     cfg.Generate,
		gatherer:     cfg.Gatherer,
		metrics:      cfg.Metrics,
		log:          cfg.Log,
	}
}

// CSVPath returns the file currently served.
func (s *Server) CSVPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csvPath
}

// Routes returns the API handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.requestLogger,
	)

	r.Get("/", s.handleRoot)

	r.Route("/api", func(r chi.Router) {
		r.Get("/orders", s.handleOrders)
		r.Get("/orders/{po}", s.handleOrder)
		r.Get("/statistics", s.handleStatistics)
		r.Get("/vendors", s.handleUnique(columnVendor, "vendors"))
		r.Get("/departments", s.handleUnique(columnDepartment, "departments"))
		r.Post("/export", s.handleExport)
		r.Get("/download", s.handleDownload)
		if s.generate != nil {
			r.Post("/generate", s.handleGenerate)
		}
	})

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// requestLogger logs each request and observes its duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		if s.metrics != nil {
			s.metrics.ObserveRequest(route, r.Method, start)
		}
		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// NewHTTPServer returns an *http.Server with conservative timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
